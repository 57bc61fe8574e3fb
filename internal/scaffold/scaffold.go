package scaffold

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pgxgen/pgxgen/internal/branding"
	"github.com/pgxgen/pgxgen/internal/templates"
	"github.com/spf13/afero"
)

// Source supplies template bodies by ID.
type Source interface {
	Render(id templates.ID, data templates.Data) ([]byte, error)
	Raw(id templates.ID) ([]byte, error)
}

// Options configures a Generator. Zero values select the OS filesystem, the
// embedded template set and a discarding logger.
type Options struct {
	Fs     afero.Fs
	Source Source
	Logger *slog.Logger
	// Staged generates into a sibling staging directory and renames it into
	// place only when every step succeeded.
	Staged bool
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// Generator writes extension crates.
type Generator struct {
	fs     afero.Fs
	source Source
	logger *slog.Logger
	staged bool
}

// New creates a Generator from opts.
func New(opts Options) (*Generator, error) {
	g := &Generator{
		fs:     opts.Fs,
		source: opts.Source,
		logger: opts.Logger,
		staged: opts.Staged,
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.source == nil {
		set, err := templates.Default()
		if err != nil {
			return nil, err
		}
		g.source = set
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g, nil
}

// Generate creates the crate for name at root/name on the OS filesystem using
// the embedded templates.
func Generate(name string, variant Variant, root string) (*Result, error) {
	g, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return g.Generate(name, variant, root)
}

// Generate validates name and creates the crate at root/name.
//
// Files are truncated and rewritten when they already exist. Outside staged
// mode a failure leaves whatever was created before it in place.
func (g *Generator) Generate(name string, variant Variant, root string) (*Result, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	dest := filepath.Join(root, name)
	g.logger.Debug("generating extension", "name", name, "variant", variant.String(), "dest", dest, "staged", g.staged)

	var (
		files []string
		err   error
	)
	if g.staged {
		files, err = g.writeStaged(name, variant, root, dest)
	} else {
		files, err = g.write(name, variant, dest)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		OutputDir: dest,
		Files:     files,
		Warnings:  g.check(dest, name),
	}, nil
}

// write runs the plan against dest and returns the files written.
func (g *Generator) write(name string, variant Variant, dest string) ([]string, error) {
	for _, dir := range Directories() {
		p := filepath.Join(dest, filepath.FromSlash(dir))
		if err := g.fs.MkdirAll(p, 0755); err != nil {
			return nil, &StepError{Step: "creating directory", Path: p, Err: err}
		}
		g.logger.Debug("created directory", "path", p)
	}

	data := templates.Data{Name: name}
	var files []string
	for _, step := range Plan(name, variant) {
		var (
			content []byte
			err     error
		)
		if step.Render {
			content, err = g.source.Render(step.Template, data)
		} else {
			content, err = g.source.Raw(step.Template)
		}
		if err != nil {
			return nil, fmt.Errorf("preparing %s: %w", step.Path, err)
		}

		p := filepath.Join(dest, filepath.FromSlash(step.Path))
		if err := afero.WriteFile(g.fs, p, content, 0644); err != nil {
			return nil, &StepError{Step: "writing", Path: p, Err: err}
		}
		g.logger.Debug("wrote file", "path", p, "template", string(step.Template), "bytes", len(content))
		files = append(files, step.Path)
	}
	return files, nil
}

// writeStaged runs the plan inside a staging directory under root and renames
// the result to dest. The staging directory is always removed.
func (g *Generator) writeStaged(name string, variant Variant, root, dest string) ([]string, error) {
	if _, err := g.fs.Stat(dest); err == nil {
		return nil, &StepError{Step: "staging", Path: dest, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, &StepError{Step: "staging", Path: dest, Err: err}
	}

	stage := filepath.Join(root, branding.StagePrefix()+uuid.NewString())
	defer func() {
		if err := g.fs.RemoveAll(stage); err != nil {
			g.logger.Warn("removing staging directory", "path", stage, "error", err)
		}
	}()

	staged := filepath.Join(stage, name)
	files, err := g.write(name, variant, staged)
	if err != nil {
		return nil, err
	}

	if err := g.fs.Rename(staged, dest); err != nil {
		return nil, &StepError{Step: "moving into place", Path: dest, Err: err}
	}
	g.logger.Debug("moved staged tree into place", "from", staged, "to", dest)
	return files, nil
}
