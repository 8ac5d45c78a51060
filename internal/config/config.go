package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SourceFileExt is the canonical script extension; SourceFileExtensions
// lists every spelling the CLI accepts without a warning.
const SourceFileExt = ".adn"

var SourceFileExtensions = []string{SourceFileExt, ".adorn"}

// ConfigFileName is looked up next to the script being run.
const ConfigFileName = "adorn.yaml"

// MaxRecursionDepth bounds parser and evaluator nesting.
const MaxRecursionDepth = 1000

// Built-in function names
const (
	PrintFuncName       = "print"
	LenFuncName         = "len"
	PushFuncName        = "push"
	TypeOfFuncName      = "typeOf"
	StrFuncName         = "str"
	KeysFuncName        = "keys"
	GetMetadataFuncName = "getMetadata"
	PanicFuncName       = "panic"
)

// Context field names passed to decorators
const (
	ContextKindField           = "kind"
	ContextNameField           = "name"
	ContextMetadataField       = "metadata"
	ContextAddInitializerField = "addInitializer"
	ContextPrivateField        = "private"
	ContextStaticField         = "static"
	ContextFunctionMetaField   = "functionMetadata"
	ContextAccessorMetaField   = "accessorMetadata"
)

// DecoratorKinds holds the kind strings reported through decorator
// contexts. The spellings are unsettled upstream (e.g. "object-method"
// vs "method"), so they are configuration rather than constants.
type DecoratorKinds struct {
	Function       string `yaml:"function"`
	ObjectMethod   string `yaml:"objectMethod"`
	ObjectGetter   string `yaml:"objectGetter"`
	ObjectSetter   string `yaml:"objectSetter"`
	ObjectProperty string `yaml:"objectProperty"`
	ObjectAccessor string `yaml:"objectAccessor"`
}

// Options are the host-tunable engine settings. Zero value is not
// usable; start from Default().
type Options struct {
	Kinds DecoratorKinds `yaml:"kinds"`
	// StaticReportsTrue flips the context's `static` field for
	// object-literal elements. Unresolved upstream; defaults to false.
	StaticReportsTrue bool `yaml:"staticReportsTrue"`
	// FunctionMetadata enables the per-function functionMetadata /
	// accessorMetadata context fields.
	FunctionMetadata bool `yaml:"functionMetadata"`
}

func Default() Options {
	return Options{
		Kinds: DecoratorKinds{
			Function:       "function",
			ObjectMethod:   "object-method",
			ObjectGetter:   "object-getter",
			ObjectSetter:   "object-setter",
			ObjectProperty: "object-property",
			ObjectAccessor: "object-accessor",
		},
	}
}

// Load reads an options file, overlaying Default(). A missing file is
// not an error; a malformed one is.
func Load(path string) (Options, error) {
	opts := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing %s: %w", path, err)
	}
	// An override file may set only some kind spellings; empty ones
	// keep their defaults.
	def := Default().Kinds
	if opts.Kinds.Function == "" {
		opts.Kinds.Function = def.Function
	}
	if opts.Kinds.ObjectMethod == "" {
		opts.Kinds.ObjectMethod = def.ObjectMethod
	}
	if opts.Kinds.ObjectGetter == "" {
		opts.Kinds.ObjectGetter = def.ObjectGetter
	}
	if opts.Kinds.ObjectSetter == "" {
		opts.Kinds.ObjectSetter = def.ObjectSetter
	}
	if opts.Kinds.ObjectProperty == "" {
		opts.Kinds.ObjectProperty = def.ObjectProperty
	}
	if opts.Kinds.ObjectAccessor == "" {
		opts.Kinds.ObjectAccessor = def.ObjectAccessor
	}
	return opts, nil
}
