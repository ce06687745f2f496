// Command spvreflect reflects over a SPIR-V binary and prints its
// resources, entry points and buffer layouts as JSON.
//
// Usage:
//
//	spvreflect [options] <input.spv>
//
// Examples:
//
//	spvreflect shader.spv                    # Dump shader resources
//	spvreflect -entry light_pass shader.spv  # Reflect a specific entry point
//	spvreflect -ranges 12 shader.spv         # Active ranges of buffer ID 12
//	spvreflect -remap remap.toml shader.spv  # Apply name/decoration edits first
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/segmentio/encoding/json"

	"github.com/gogpu/spvcross"
	"github.com/gogpu/spvcross/ir"
	"github.com/gogpu/spvcross/spv"
)

var (
	entry    = flag.String("entry", "", "entry point to reflect (default: first declared)")
	rangesID = flag.Uint("ranges", 0, "also report active buffer ranges for this variable ID")
	remap    = flag.String("remap", "", "TOML file of name/decoration edits to apply before reflecting")
	verbose  = flag.Bool("v", false, "verbose parser logging")
	version  = flag.Bool("version", false, "print version")
)

const spvreflectVersion = "0.1.0-dev"

// remapConfig is the edit surface exposed to callers: names and
// decorations may be overridden before reflection runs.
type remapConfig struct {
	EntryPoint string `toml:"entry_point"`
	Rename     []struct {
		ID   uint32 `toml:"id"`
		Name string `toml:"name"`
	} `toml:"rename"`
	Decorate []struct {
		ID         uint32 `toml:"id"`
		Decoration uint32 `toml:"decoration"`
		Value      uint32 `toml:"value"`
	} `toml:"decorate"`
}

type report struct {
	EntryPoints []entryPointReport `json:"entry_points"`
	Resources   resourcesReport    `json:"resources"`
	Ranges      []ir.BufferRange   `json:"active_ranges,omitempty"`
}

type entryPointReport struct {
	Name  string `json:"name"`
	Model string `json:"execution_model"`
}

type resourcesReport struct {
	UniformBuffers []resourceReport `json:"uniform_buffers"`
	StorageBuffers []resourceReport `json:"storage_buffers"`
	StageInputs    []resourceReport `json:"stage_inputs"`
	StageOutputs   []resourceReport `json:"stage_outputs"`
	SubpassInputs  []resourceReport `json:"subpass_inputs"`
	StorageImages  []resourceReport `json:"storage_images"`
	SampledImages  []resourceReport `json:"sampled_images"`
	AtomicCounters []resourceReport `json:"atomic_counters"`
	PushConstants  []resourceReport `json:"push_constant_buffers"`
}

type resourceReport struct {
	ID            uint32 `json:"id"`
	Name          string `json:"name"`
	DescriptorSet uint32 `json:"set,omitempty"`
	Binding       uint32 `json:"binding,omitempty"`
	Location      uint32 `json:"location,omitempty"`
	DeclaredSize  uint32 `json:"declared_size,omitempty"`
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("spvreflect version %s\n", spvreflectVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	}

	words, err := readWords(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	c, err := spvcross.NewCompiler(words, spvcross.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing module: %v\n", err)
		os.Exit(1)
	}

	if *remap != "" {
		if err := applyRemap(c, *remap); err != nil {
			fmt.Fprintf(os.Stderr, "Error applying remap: %v\n", err)
			os.Exit(1)
		}
	}
	if *entry != "" {
		if err := c.SetEntryPoint(*entry); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	rep, err := buildReport(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reflecting module: %v\n", err)
		os.Exit(1)
	}
	if *rangesID != 0 {
		ranges, err := c.GetActiveBufferRanges(ir.ID(*rangesID))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error computing ranges: %v\n", err)
			os.Exit(1)
		}
		rep.Ranges = ranges
	}

	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func readWords(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("file size %d is not a whole number of words", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	return words, nil
}

func applyRemap(c *spvcross.Compiler, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var cfg remapConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for _, r := range cfg.Rename {
		c.SetName(ir.ID(r.ID), r.Name)
	}
	for _, d := range cfg.Decorate {
		c.SetDecoration(ir.ID(d.ID), spv.Decoration(d.Decoration), d.Value)
	}
	if cfg.EntryPoint != "" {
		return c.SetEntryPoint(cfg.EntryPoint)
	}
	return nil
}

func buildReport(c *spvcross.Compiler) (*report, error) {
	rep := &report{}

	for _, name := range c.GetEntryPoints() {
		ep, err := c.GetEntryPoint(name)
		if err != nil {
			return nil, err
		}
		rep.EntryPoints = append(rep.EntryPoints, entryPointReport{
			Name:  name,
			Model: ep.Model.String(),
		})
	}

	res, err := c.GetShaderResources()
	if err != nil {
		return nil, err
	}
	rep.Resources = resourcesReport{
		UniformBuffers: describeAll(c, res.UniformBuffers, true),
		StorageBuffers: describeAll(c, res.StorageBuffers, true),
		StageInputs:    describeAll(c, res.StageInputs, false),
		StageOutputs:   describeAll(c, res.StageOutputs, false),
		SubpassInputs:  describeAll(c, res.SubpassInputs, false),
		StorageImages:  describeAll(c, res.StorageImages, false),
		SampledImages:  describeAll(c, res.SampledImages, false),
		AtomicCounters: describeAll(c, res.AtomicCounters, false),
		PushConstants:  describeAll(c, res.PushConstantBuffers, true),
	}
	return rep, nil
}

func describeAll(c *spvcross.Compiler, resources []ir.Resource, buffer bool) []resourceReport {
	out := make([]resourceReport, 0, len(resources))
	for _, r := range resources {
		rep := resourceReport{
			ID:            uint32(r.ID),
			Name:          r.Name,
			DescriptorSet: c.GetDecoration(r.ID, spv.DecorationDescriptorSet),
			Binding:       c.GetDecoration(r.ID, spv.DecorationBinding),
			Location:      c.GetDecoration(r.ID, spv.DecorationLocation),
		}
		if buffer {
			if t, err := c.GetType(r.BaseTypeID); err == nil {
				if size, err := c.GetDeclaredStructSize(t); err == nil {
					rep.DeclaredSize = size
				}
			}
		}
		out = append(out, rep)
	}
	return out
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: spvreflect [options] <input.spv>")
	fmt.Fprintln(os.Stderr, "\nOptions:")
	flag.PrintDefaults()
}
