package scan

import "slices"

// Project is one top-level directory and the variants found inside it.
type Project struct {
	Name     string
	Variants []string
}

// ImageMap maps project names to their qualifying variants, in scan order.
// Every project holds at least one variant. An ImageMap is not modified after
// Scan returns it; accessors hand out copies.
type ImageMap struct {
	projects []Project
}

// NewImageMap builds an ImageMap from projects, dropping those without
// variants. Order is preserved as given.
func NewImageMap(projects ...Project) *ImageMap {
	m := &ImageMap{}
	for _, p := range projects {
		if len(p.Variants) == 0 {
			continue
		}
		m.projects = append(m.projects, Project{Name: p.Name, Variants: slices.Clone(p.Variants)})
	}
	return m
}

// Projects returns a copy of the projects in order.
func (m *ImageMap) Projects() []Project {
	if m == nil {
		return nil
	}
	out := make([]Project, len(m.projects))
	for i, p := range m.projects {
		out[i] = Project{Name: p.Name, Variants: slices.Clone(p.Variants)}
	}
	return out
}

// Len returns the number of projects.
func (m *ImageMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.projects)
}

// Names returns the project names in order.
func (m *ImageMap) Names() []string {
	if m == nil {
		return nil
	}
	names := make([]string, len(m.projects))
	for i, p := range m.projects {
		names[i] = p.Name
	}
	return names
}

// Variants returns the variants of the named project and whether it exists.
func (m *ImageMap) Variants(name string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	for _, p := range m.projects {
		if p.Name == name {
			return slices.Clone(p.Variants), true
		}
	}
	return nil, false
}

// VariantCount returns the total number of variants across all projects.
func (m *ImageMap) VariantCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, p := range m.projects {
		n += len(p.Variants)
	}
	return n
}
