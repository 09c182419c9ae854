// Package imagebuild tags and builds the tool proxy container image.
package imagebuild

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/hashicorp/go-hclog"
)

const (
	// DefaultImageName is the fixed name images are built under.
	DefaultImageName = "ghcr.io/mcptools/toolgate"

	// DefaultVersionTag is edited by hand between releases.
	// There is no semantic-version parsing anywhere; the value is opaque.
	DefaultVersionTag = "0.4.0"

	// LatestTag is applied alongside the version tag unless skipped.
	LatestTag = "latest"
)

// Runner abstracts external command execution so builds can be tested.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Builder builds the proxy image under its fixed tag set.
// NewBuilder should be used to create instances of Builder.
type Builder struct {
	logger     hclog.Logger
	runner     Runner
	image      string
	version    string
	contextDir string
	skipLatest bool
}

// Option defines a functional option for configuring a Builder.
type Option func(*Builder) error

// NewBuilder creates a builder for the given runner.
func NewBuilder(logger hclog.Logger, runner Runner, opt ...Option) (*Builder, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}

	b := &Builder{
		logger:     logger.Named("build"),
		runner:     runner,
		image:      DefaultImageName,
		version:    DefaultVersionTag,
		contextDir: ".",
	}

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// WithImageName overrides the image name.
func WithImageName(name string) Option {
	return func(b *Builder) error {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("image name cannot be empty")
		}
		b.image = name
		return nil
	}
}

// WithVersionTag overrides the version tag.
func WithVersionTag(tag string) Option {
	return func(b *Builder) error {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("version tag cannot be empty")
		}
		b.version = tag
		return nil
	}
}

// WithContextDir sets the build context directory.
func WithContextDir(dir string) Option {
	return func(b *Builder) error {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("context directory cannot be empty")
		}
		b.contextDir = dir
		return nil
	}
}

// WithSkipLatest builds only the version tag.
func WithSkipLatest(skip bool) Option {
	return func(b *Builder) error {
		b.skipLatest = skip
		return nil
	}
}

// Tags returns the tag set the builder will apply, in build order.
func (b *Builder) Tags() []string {
	tags := []string{b.version}
	if !b.skipLatest {
		tags = append(tags, LatestTag)
	}
	return tags
}

// Build runs one image build per tag, stopping at the first failure.
// Tags built before a failure are not removed.
func (b *Builder) Build(ctx context.Context) error {
	for _, tag := range b.Tags() {
		ref := fmt.Sprintf("%s:%s", b.image, tag)
		b.logger.Info("building image", "ref", ref, "context", b.contextDir)

		if err := b.runner.Run(ctx, "docker", "build", "-t", ref, b.contextDir); err != nil {
			return fmt.Errorf("build failed for %s: %w", ref, err)
		}
	}

	return nil
}
