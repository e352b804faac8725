package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"

	"github.com/valv/kitbag/internal/fsutil"
)

// hclFile mirrors the on-disk schema. Every attribute is optional so that
// a config may be split across several files.
type hclFile struct {
	Server *hclServer `hcl:"server,block"`
	Tubes  []hclTube  `hcl:"tube,block"`
	HTTP   *hclHTTP   `hcl:"http,block"`
}

type hclServer struct {
	Addr *string `hcl:"addr,optional"`
}

type hclTube struct {
	Name     string  `hcl:"name,label"`
	Priority *uint32 `hcl:"priority,optional"`
	Delay    *string `hcl:"delay,optional"`
	TTR      *string `hcl:"ttr,optional"`
}

type hclHTTP struct {
	Timeout   *string `hcl:"timeout,optional"`
	BaseURL   *string `hcl:"base_url,optional"`
	UserAgent *string `hcl:"user_agent,optional"`
}

// envFunc exposes env("NAME") to config expressions, so secrets and
// per-host addresses stay out of the files themselves.
var envFunc = function.New(&function.Spec{
	Params: []function.Parameter{
		{Name: "name", Type: cty.String},
	},
	Type: function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		return cty.StringVal(os.Getenv(args[0].AsString())), nil
	},
})

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{"env": envFunc},
	}
}

// Load reads the configuration from path, which may be one .hcl file or a
// directory of them. A missing or empty path yields Default().
func Load(path string) (*File, error) {
	out := Default()
	if path == "" {
		return out, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	paths := []string{path}
	if info.IsDir() {
		paths, err = fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("config: scanning %s: %w", path, err)
		}
	}

	parser := hclparse.NewParser()
	for _, p := range paths {
		file, diags := parser.ParseHCLFile(p)
		if diags.HasErrors() {
			return nil, fmt.Errorf("config: failed to parse %s: %w", p, diags)
		}

		var raw hclFile
		if diags := gohcl.DecodeBody(file.Body, evalContext(), &raw); diags.HasErrors() {
			return nil, fmt.Errorf("config: failed to decode %s: %w", p, diags)
		}
		if err := mergeFile(out, &raw, p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mergeFile applies one parsed file onto the resolved configuration.
func mergeFile(out *File, raw *hclFile, path string) error {
	if raw.Server != nil && raw.Server.Addr != nil {
		out.Server.Addr = *raw.Server.Addr
	}

	for _, tube := range raw.Tubes {
		tc := out.TubeDefaults(tube.Name)
		if tube.Priority != nil {
			tc.Priority = *tube.Priority
		}
		if err := setDuration(&tc.Delay, tube.Delay, path, "delay"); err != nil {
			return err
		}
		if err := setDuration(&tc.TTR, tube.TTR, path, "ttr"); err != nil {
			return err
		}
		out.Tubes[tube.Name] = tc
	}

	if raw.HTTP != nil {
		if err := setDuration(&out.HTTP.Timeout, raw.HTTP.Timeout, path, "timeout"); err != nil {
			return err
		}
		if raw.HTTP.BaseURL != nil {
			out.HTTP.BaseURL = *raw.HTTP.BaseURL
		}
		if raw.HTTP.UserAgent != nil {
			out.HTTP.UserAgent = *raw.HTTP.UserAgent
		}
	}
	return nil
}

func setDuration(dst *time.Duration, raw *string, path, attr string) error {
	if raw == nil {
		return nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil {
		return fmt.Errorf("config: %s: bad %s: %w", path, attr, err)
	}
	*dst = d
	return nil
}
