package bindc

import (
	"fmt"
	"io/fs"

	"github.com/grindlemire/go-bindc/internal/bindgen"
	"github.com/grindlemire/go-bindc/internal/ctfe"
)

// Option is a functional option for configuring Compile.
type Option func(*config) error

type config struct {
	runtimeModule   string
	sourcePrefix    string
	signalFactories []string
	anchorPrefix    string
	templateTag     string
	modules         fs.FS
	cache           *ctfe.Cache
}

func newConfig() *config {
	return &config{
		runtimeModule:   bindgen.DefaultRuntimeModule,
		sourcePrefix:    "this.",
		signalFactories: bindgen.DefaultSignalFactories,
		anchorPrefix:    bindgen.DefaultAnchorPrefix,
		templateTag:     bindgen.DefaultTemplateTag,
	}
}

// WithRuntimeModule sets the module the binding primitives are imported
// from. Default is "bindc/runtime".
func WithRuntimeModule(module string) Option {
	return func(c *config) error {
		if module == "" {
			return fmt.Errorf("runtime module cannot be empty")
		}
		c.runtimeModule = module
		return nil
	}
}

// WithSourcePrefix sets the prefix that turns a reactive source name into
// an expression in the generated calls. Default is "this.". An empty
// prefix references sources by bare name.
func WithSourcePrefix(prefix string) Option {
	return func(c *config) error {
		c.sourcePrefix = prefix
		return nil
	}
}

// WithSignalFactories sets the functions whose literal argument gives a
// reactive source its initial value. Default is signal.
func WithSignalFactories(names ...string) Option {
	return func(c *config) error {
		if len(names) == 0 {
			return fmt.Errorf("at least one signal factory is required")
		}
		for _, n := range names {
			if !bindgen.IsIdentifier(n) {
				return fmt.Errorf("signal factory %q is not an identifier", n)
			}
		}
		c.signalFactories = names
		return nil
	}
}

// WithAnchorPrefix sets the prefix of generated anchor ids. Default is "r".
func WithAnchorPrefix(prefix string) Option {
	return func(c *config) error {
		if prefix == "" || !bindgen.IsIdentifier(prefix) {
			return fmt.Errorf("anchor prefix %q must be a non-empty identifier", prefix)
		}
		c.anchorPrefix = prefix
		return nil
	}
}

// WithTemplateTag sets the tag function that marks templates to compile.
// Default is html.
func WithTemplateTag(tag string) Option {
	return func(c *config) error {
		if !bindgen.IsIdentifier(tag) {
			return fmt.Errorf("template tag %q is not an identifier", tag)
		}
		c.templateTag = tag
		return nil
	}
}

// WithModules enables compile-time component and route resolution against
// the module tree in fsys. The compiled filename must be a path inside
// fsys.
func WithModules(fsys fs.FS) Option {
	return func(c *config) error {
		c.modules = fsys
		return nil
	}
}

// WithCache shares a parsed-module cache between Compile calls. Without
// one each call parses the modules it needs afresh.
func WithCache(cache *ctfe.Cache) Option {
	return func(c *config) error {
		if cache == nil {
			return fmt.Errorf("cache cannot be nil")
		}
		c.cache = cache
		return nil
	}
}
