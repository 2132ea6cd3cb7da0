package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/duyet/i/internal/config"
	"github.com/duyet/i/internal/log"
	"github.com/duyet/i/internal/output"
	"github.com/duyet/i/internal/render"
	"github.com/duyet/i/internal/scan"
)

func runGenerate(cmd *cobra.Command, flags rootFlags) error {
	// In dry-run mode stdout carries only the document.
	if flags.dryRun {
		log.SetOutput(cmd.ErrOrStderr())
	} else {
		log.SetOutput(cmd.OutOrStdout())
	}

	root, cfg, err := setup(flags)
	if err != nil {
		return err
	}
	fsys := osfs.New(root)

	_, doc, err := generate(fsys, cfg)
	if err != nil {
		return err
	}

	switch {
	case flags.dryRun:
		if _, err := cmd.OutOrStdout().Write(doc); err != nil {
			return fmt.Errorf("print workflow: %w", err)
		}
		return nil
	case flags.check:
		if err := output.Verify(fsys, cfg.Output, doc); err != nil {
			return fmt.Errorf("%w; run cigen to regenerate", err)
		}
		log.Success(fmt.Sprintf("%s is up to date", cfg.Output))
		return nil
	}

	if err := output.Write(fsys, cfg.Output, doc); err != nil {
		return err
	}
	log.Success(fmt.Sprintf("Generated workflows to %s", cfg.Output))
	return nil
}

// generate is the testable core of the root command: scan fsys and render
// the workflow for what was found.
func generate(fsys billy.Filesystem, cfg *config.Config) (*scan.ImageMap, []byte, error) {
	m, err := scan.Scan(fsys, scanOptions(cfg))
	if err != nil {
		return nil, nil, err
	}

	r, err := render.New(
		render.WithBranches(cfg.Branches...),
		render.WithOutputPath(cfg.Output),
		render.WithDescriptor(cfg.Descriptor),
	)
	if err != nil {
		return nil, nil, err
	}
	doc, err := r.Render(m)
	if err != nil {
		return nil, nil, err
	}
	return m, doc, nil
}

func scanOptions(cfg *config.Config) scan.Options {
	return scan.Options{
		Descriptor: cfg.Descriptor,
		Exclude:    cfg.Exclude,
		Strict:     cfg.Strict,
	}
}

// setup resolves the scan root and loads the validated config for it.
func setup(flags rootFlags) (string, *config.Config, error) {
	root := flags.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", nil, fmt.Errorf("get working directory: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", nil, fmt.Errorf("resolve root: %w", err)
	}
	fi, err := os.Stat(root)
	if err != nil {
		return "", nil, fmt.Errorf("root: %w", err)
	}
	if !fi.IsDir() {
		return "", nil, fmt.Errorf("root %s is not a directory", root)
	}

	path := flags.configPath
	if path == "" {
		path = filepath.Join(root, config.FileName)
	} else if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil, fmt.Errorf("config file %s does not exist", path)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return "", nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return "", nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return root, cfg, nil
}
