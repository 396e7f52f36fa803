package cmd

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/nathangeffen/ziggie/macro"
)

// ModelFile is the YAML form of a ModelList. Each entry is a group tree;
// parameters are meaningful only on the top-level groups.
type ModelFile struct {
	Models []*GroupSpec `yaml:"models"`
}

// GroupSpec mirrors macro.Group for YAML decoding. Exactly one of
// Compartments or Groups must be present; macro validation enforces this
// after construction.
type GroupSpec struct {
	Name         string             `yaml:"name"`
	Compartments map[string]float64 `yaml:"compartments"`
	Groups       []*GroupSpec       `yaml:"groups"`
	Transitions  map[string]float64 `yaml:"transitions"`
	Parameters   map[string]any     `yaml:"parameters"`
}

// parametersSpec is the serializable form of macro.Parameters. Delta
// functions and hooks are referenced by registry name. Decoding lays the
// file's entries over a defaults-filled instance, so absent keys keep
// their default values.
type parametersSpec struct {
	From                       int               `mapstructure:"from"`
	To                         int               `mapstructure:"to"`
	RecordFrequency            int               `mapstructure:"record_frequency"`
	RecordFirst                bool              `mapstructure:"record_first"`
	RecordLast                 bool              `mapstructure:"record_last"`
	ReduceInfectivity          float64           `mapstructure:"reduce_infectivity"`
	AsymptomaticInfectiousness float64           `mapstructure:"asymptomatic_infectiousness"`
	TreatmentInfectiousness    float64           `mapstructure:"treatment_infectiousness"`
	Noise                      float64           `mapstructure:"noise"`
	Discrete                   bool              `mapstructure:"discrete"`
	TransitionFuncs            map[string]string `mapstructure:"transition_funcs"`
	BeforeFuncs                []string          `mapstructure:"before_funcs"`
	AfterFuncs                 []string          `mapstructure:"after_funcs"`
}

// LoadModelFile reads a YAML model file and returns a validated ModelList.
func LoadModelFile(path string) (macro.ModelList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseModelFile(data)
}

// ParseModelFile builds a validated ModelList from YAML bytes.
func ParseModelFile(data []byte) (macro.ModelList, error) {
	var file ModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse model file: %w", err)
	}
	if len(file.Models) == 0 {
		return nil, fmt.Errorf("model file: %w", macro.ErrEmptyModelList)
	}

	list := make(macro.ModelList, 0, len(file.Models))
	for _, spec := range file.Models {
		params, err := decodeParameters(spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("model %q: %w", spec.Name, err)
		}
		list = append(list, &macro.Model{
			Group:      *buildGroup(spec),
			Parameters: params,
		})
	}
	if err := list.Validate(); err != nil {
		return nil, err
	}
	return list, nil
}

func buildGroup(spec *GroupSpec) *macro.Group {
	g := &macro.Group{
		Name:         spec.Name,
		Compartments: macro.Compartments(spec.Compartments),
		Transitions:  macro.Transitions(spec.Transitions),
	}
	for _, child := range spec.Groups {
		g.Groups = append(g.Groups, buildGroup(child))
	}
	return g
}

// decodeParameters fills a parameter set from a partially specified
// mapping: unspecified fields keep their defaults, unknown keys are an
// error, and function references resolve against the macro registries.
func decodeParameters(raw map[string]any) (*macro.Parameters, error) {
	defaults := macro.DefaultParameters()
	if len(raw) == 0 {
		return defaults, nil
	}

	spec := parametersSpec{
		From:                       defaults.From,
		To:                         defaults.To,
		RecordFrequency:            defaults.RecordFrequency,
		RecordFirst:                defaults.RecordFirst,
		RecordLast:                 defaults.RecordLast,
		ReduceInfectivity:          defaults.ReduceInfectivity,
		AsymptomaticInfectiousness: defaults.AsymptomaticInfectiousness,
		TreatmentInfectiousness:    defaults.TreatmentInfectiousness,
		Noise:                      defaults.Noise,
		Discrete:                   defaults.Discrete,
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("parameters: %w", err)
	}

	p := defaults
	p.From = spec.From
	p.To = spec.To
	p.RecordFrequency = spec.RecordFrequency
	p.RecordFirst = spec.RecordFirst
	p.RecordLast = spec.RecordLast
	p.ReduceInfectivity = spec.ReduceInfectivity
	p.AsymptomaticInfectiousness = spec.AsymptomaticInfectiousness
	p.TreatmentInfectiousness = spec.TreatmentInfectiousness
	p.Noise = spec.Noise
	p.Discrete = spec.Discrete

	if len(spec.TransitionFuncs) > 0 {
		p.TransitionFuncs = make(map[string]macro.DeltaFunc, len(spec.TransitionFuncs))
		for transition, name := range spec.TransitionFuncs {
			fn, ok := macro.DeltaFuncByName(name)
			if !ok {
				return nil, fmt.Errorf("parameters: transition_funcs[%q]: unknown delta function %q", transition, name)
			}
			p.TransitionFuncs[transition] = fn
		}
	}
	if p.BeforeFuncs, err = resolveHooks(spec.BeforeFuncs, "before_funcs"); err != nil {
		return nil, err
	}
	if p.AfterFuncs, err = resolveHooks(spec.AfterFuncs, "after_funcs"); err != nil {
		return nil, err
	}
	return p, nil
}

func resolveHooks(names []string, field string) ([]macro.Hook, error) {
	var hooks []macro.Hook
	for _, name := range names {
		h, ok := macro.HookByName(name)
		if !ok {
			return nil, fmt.Errorf("parameters: %s: unknown hook %q", field, name)
		}
		hooks = append(hooks, h)
	}
	return hooks, nil
}
