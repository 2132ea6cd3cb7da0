package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/duyet/i/internal/render"
	"github.com/duyet/i/internal/scan"
)

type workflow struct {
	Name string `yaml:"name"`
	On   struct {
		Push struct {
			Branches []string `yaml:"branches"`
		} `yaml:"push"`
	} `yaml:"on"`
	Env  map[string]string `yaml:"env"`
	Jobs map[string]job    `yaml:"jobs"`
}

type job struct {
	Name     string `yaml:"name"`
	RunsOn   string `yaml:"runs-on"`
	Strategy struct {
		Matrix struct {
			Tags []string `yaml:"tags"`
		} `yaml:"matrix"`
	} `yaml:"strategy"`
	Env   map[string]string `yaml:"env"`
	Steps []step            `yaml:"steps"`
}

type step struct {
	Name string            `yaml:"name"`
	ID   string            `yaml:"id"`
	If   string            `yaml:"if"`
	Uses string            `yaml:"uses"`
	Run  string            `yaml:"run"`
	With map[string]string `yaml:"with"`
}

func renderDoc(t *testing.T, m *scan.ImageMap, opts ...render.Option) string {
	t.Helper()
	r, err := render.New(opts...)
	require.NoError(t, err)
	out, err := r.Render(m)
	require.NoError(t, err)
	return string(out)
}

func parse(t *testing.T, doc string) workflow {
	t.Helper()
	var wf workflow
	require.NoError(t, yaml.Unmarshal([]byte(doc), &wf), "rendered document is not valid YAML:\n%s", doc)
	return wf
}

func TestRender_Empty(t *testing.T) {
	doc := renderDoc(t, scan.NewImageMap())

	want := "# Generated by cigen\n" +
		"# Do not edit this file manually\n" +
		"\n" +
		"name: Build and Push\n" +
		"on:\n" +
		"  push:\n" +
		"    branches:\n" +
		"      - master\n" +
		"\n" +
		"env:\n" +
		"  REGISTRY: ghcr.io\n" +
		"  REPO: ${{ github.repository }}\n" +
		"\n" +
		"jobs: {}\n"
	assert.Equal(t, want, doc)

	wf := parse(t, doc)
	assert.Empty(t, wf.Jobs)
	assert.Equal(t, "Build and Push", wf.Name)
}

func TestRender_NilMap(t *testing.T) {
	doc := renderDoc(t, nil)
	assert.True(t, strings.HasSuffix(doc, "jobs: {}\n"), "document:\n%s", doc)
}

func TestRender_SingleProject(t *testing.T) {
	doc := renderDoc(t, scan.NewImageMap(scan.Project{Name: "foo", Variants: []string{"v1"}}))

	assert.Contains(t, doc, "\njobs:\n"+
		"  foo:\n"+
		"    name: Build foo\n"+
		"    runs-on: ubuntu-latest\n"+
		"    strategy:\n"+
		"      matrix:\n"+
		"        tags:\n"+
		"          - v1\n"+
		"    env:\n"+
		"      IMAGE_NAME: foo\n"+
		"      IMAGE_TAG: '${{ matrix.tags }}'\n"+
		"    steps:\n"+
		"      - name: Checkout\n")
	assert.Contains(t, doc, "  REGISTRY: ghcr.io\n")
	assert.Contains(t, doc, "  REPO: ${{ github.repository }}\n")
	assert.True(t, strings.HasSuffix(doc, "run: echo ${{ steps.docker_build.outputs.digest }}\n"))

	wf := parse(t, doc)
	require.Len(t, wf.Jobs, 1)
	foo, ok := wf.Jobs["foo"]
	require.True(t, ok, "job foo missing")
	assert.Equal(t, []string{"v1"}, foo.Strategy.Matrix.Tags)
	assert.Equal(t, "Build foo", foo.Name)
	assert.Equal(t, "ubuntu-latest", foo.RunsOn)
	assert.Equal(t, map[string]string{"IMAGE_NAME": "foo", "IMAGE_TAG": "${{ matrix.tags }}"}, foo.Env)
	assert.Equal(t, map[string]string{"REGISTRY": "ghcr.io", "REPO": "${{ github.repository }}"}, wf.Env)
	assert.Equal(t, []string{"master"}, wf.On.Push.Branches)
}

func TestRender_StepsPassThrough(t *testing.T) {
	doc := renderDoc(t, scan.NewImageMap(scan.Project{Name: "foo", Variants: []string{"v1"}}))
	steps := parse(t, doc).Jobs["foo"].Steps
	require.Len(t, steps, 7)

	uses := make([]string, len(steps))
	for i, s := range steps {
		uses[i] = s.Uses
	}
	assert.Equal(t, []string{
		"actions/checkout@v3",
		"dorny/paths-filter@v2",
		"docker/login-action@f054a8b539a109f9f41c372932f1ae047eff08c9",
		"docker/setup-buildx-action@v1",
		"docker/metadata-action@v4",
		"docker/build-push-action@v3",
		"",
	}, uses)

	filter := steps[1]
	assert.Equal(t, "changes", filter.ID)
	assert.Equal(t, "src:\n - '${{ env.IMAGE_NAME }}/${{ matrix.tags }}/**'\n - '.github/workflows/ci.yaml'\n", filter.With["filters"])

	login := steps[2]
	assert.Equal(t, "${{ env.REGISTRY }}", login.With["registry"])
	assert.Equal(t, "${{ secrets.GITHUB_TOKEN }}", login.With["password"])

	build := steps[5]
	assert.Equal(t, "steps.changes.outputs.src == 'true'", build.If)
	assert.Equal(t, "./${{ env.IMAGE_NAME }}/${{ env.IMAGE_TAG }}/Dockerfile", build.With["file"])
	assert.Equal(t, "true", build.With["push"])

	assert.Equal(t, "echo ${{ steps.docker_build.outputs.digest }}", steps[6].Run)
}

func TestRender_MultipleProjectsKeepOrder(t *testing.T) {
	m := scan.NewImageMap(
		scan.Project{Name: "alpha", Variants: []string{"1.0", "2.0"}},
		scan.Project{Name: "zeta", Variants: []string{"latest"}},
	)
	doc := renderDoc(t, m)

	a := strings.Index(doc, "\n  alpha:\n")
	z := strings.Index(doc, "\n  zeta:\n")
	require.NotEqual(t, -1, a)
	require.NotEqual(t, -1, z)
	assert.Less(t, a, z)
	assert.Contains(t, doc, "        tags:\n          - 1.0\n          - 2.0\n    env:\n")

	wf := parse(t, doc)
	require.Len(t, wf.Jobs, 2)
	assert.Equal(t, []string{"1.0", "2.0"}, wf.Jobs["alpha"].Strategy.Matrix.Tags)
	assert.Equal(t, []string{"latest"}, wf.Jobs["zeta"].Strategy.Matrix.Tags)
	assert.Equal(t, 2, strings.Count(doc, "- name: Checkout"))
}

func TestRender_Options(t *testing.T) {
	doc := renderDoc(t,
		scan.NewImageMap(scan.Project{Name: "foo", Variants: []string{"v1"}}),
		render.WithBranches("main", " ", "release"),
		render.WithOutputPath("ci/images.yaml"),
		render.WithDescriptor("Containerfile"),
	)

	wf := parse(t, doc)
	assert.Equal(t, []string{"main", "release"}, wf.On.Push.Branches)
	steps := wf.Jobs["foo"].Steps
	require.Len(t, steps, 7)
	assert.Contains(t, steps[1].With["filters"], "- 'ci/images.yaml'")
	assert.Equal(t, "./${{ env.IMAGE_NAME }}/${{ env.IMAGE_TAG }}/Containerfile", steps[5].With["file"])
}

func TestRender_EmptyOptionsKeepDefaults(t *testing.T) {
	doc := renderDoc(t,
		scan.NewImageMap(scan.Project{Name: "foo", Variants: []string{"v1"}}),
		render.WithBranches(),
		render.WithOutputPath(""),
		render.WithDescriptor("  "),
	)
	wf := parse(t, doc)
	assert.Equal(t, []string{render.DefaultBranch}, wf.On.Push.Branches)
	assert.Contains(t, wf.Jobs["foo"].Steps[1].With["filters"], render.DefaultOutputPath)
}

func TestRender_NamesAreNotHTMLEscaped(t *testing.T) {
	doc := renderDoc(t, scan.NewImageMap(scan.Project{Name: "a&b", Variants: []string{"x<y"}}))
	assert.Contains(t, doc, "IMAGE_NAME: a&b\n")
	assert.Contains(t, doc, "          - x<y\n")
	assert.NotContains(t, doc, "&amp;")
	assert.NotContains(t, doc, "&lt;")
}

func TestRender_Idempotent(t *testing.T) {
	m := scan.NewImageMap(
		scan.Project{Name: "bar", Variants: []string{"latest"}},
		scan.Project{Name: "foo", Variants: []string{"v1", "v2"}},
	)
	r, err := render.New()
	require.NoError(t, err)

	first, err := r.Render(m)
	require.NoError(t, err)
	second, err := r.Render(m)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	other, err := render.New()
	require.NoError(t, err)
	third, err := other.Render(m)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(third))
}
