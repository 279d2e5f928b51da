package crafting

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
)

// Sentinel errors for recipe loader
var (
	ErrDuplicateRecipeName = errors.New("duplicate recipe name")
	ErrInvalidItem         = errors.New("invalid item reference")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// RecipeFile is the on-disk layout of a recipe configuration file (JSON or YAML)
type RecipeFile struct {
	Version     string          `json:"version" yaml:"version"`
	Description string          `json:"description" yaml:"description"`
	Recipes     []RecipeFileDef `json:"recipes" yaml:"recipes"`

	// Rejected holds entries that could not be decoded, e.g. a success rate
	// of "abc". Load fills it; Validate reports them as skipped.
	Rejected []SkippedRecipe `json:"-" yaml:"-"`

	// positions[i] is the index in the file of Recipes[i]
	positions []int
}

// jsonRecipeFile and yamlRecipeFile defer decoding of each recipe so a bad
// entry only costs that entry
type jsonRecipeFile struct {
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Recipes     []json.RawMessage `json:"recipes"`
}

type yamlRecipeFile struct {
	Version     string      `yaml:"version"`
	Description string      `yaml:"description"`
	Recipes     []yaml.Node `yaml:"recipes"`
}

type recipeName struct {
	Name string `json:"name" yaml:"name"`
}

// RecipeFileDef is one recipe as written in a configuration file.
// Pointer fields distinguish an omitted value, which takes the default,
// from an explicit zero.
type RecipeFileDef struct {
	Name                string                   `json:"name" yaml:"name"`
	Category            string                   `json:"category" yaml:"category"`
	Icon                *int                     `json:"icon" yaml:"icon"`
	Description         string                   `json:"description" yaml:"description"`
	SuccessRate         *int                     `json:"success_rate" yaml:"success_rate"`
	CraftDuration       *int                     `json:"craft_duration" yaml:"craft_duration"`
	RequiredLevel       *int                     `json:"required_level" yaml:"required_level"`
	ExperienceAward     *int                     `json:"experience_award" yaml:"experience_award"`
	InitiallyDiscovered bool                     `json:"initially_discovered" yaml:"initially_discovered"`
	Products            []domain.ItemRequirement `json:"products" yaml:"products"`
	FailProducts        []domain.ItemRequirement `json:"fail_products" yaml:"fail_products"`
	Tools               []domain.ItemRequirement `json:"tools" yaml:"tools"`
	Ingredients         []domain.ItemRequirement `json:"ingredients" yaml:"ingredients"`
	Cues                CueFileDefs              `json:"cues" yaml:"cues"`
}

// CueFileDefs groups the optional audio cues of a recipe
type CueFileDefs struct {
	Craft   *CueFileDef `json:"craft" yaml:"craft"`
	Success *CueFileDef `json:"success" yaml:"success"`
	Failure *CueFileDef `json:"failure" yaml:"failure"`
	Learn   *CueFileDef `json:"learn" yaml:"learn"`
}

// CueFileDef is an audio cue as written in a configuration file
type CueFileDef struct {
	Name   string `json:"name" yaml:"name"`
	Volume *int   `json:"volume" yaml:"volume"`
	Pitch  *int   `json:"pitch" yaml:"pitch"`
	Pan    *int   `json:"pan" yaml:"pan"`
}

// SkippedRecipe records a recipe that was left out of a load and why
type SkippedRecipe struct {
	Index int
	Name  string
	Err   error
}

// LoadReport is the outcome of validating a recipe file. Invalid recipes are
// skipped individually so one bad entry does not take down the registry.
type LoadReport struct {
	Definitions []domain.RecipeDefinition
	Skipped     []SkippedRecipe
}

// RecipeLoader handles loading and validating recipe configuration
type RecipeLoader interface {
	Load(path string) (*RecipeFile, error)
	Validate(file *RecipeFile, catalog ItemCatalog) (*LoadReport, error)
}

type recipeLoader struct {
	validate *validator.Validate
}

// NewRecipeLoader creates a new RecipeLoader instance
func NewRecipeLoader() RecipeLoader {
	return &recipeLoader{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// LoadRecipes reads path and returns the valid recipe definitions it contains.
// catalog may be nil, in which case item references are not checked.
func LoadRecipes(ctx context.Context, path string, catalog ItemCatalog) (*LoadReport, error) {
	log := logger.FromContext(ctx)

	loader := NewRecipeLoader()
	file, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	report, err := loader.Validate(file, catalog)
	if err != nil {
		return nil, err
	}

	for _, skipped := range report.Skipped {
		log.Warn(LogMsgRecipeSkipped, "index", skipped.Index, "recipe", skipped.Name, "error", skipped.Err)
	}
	log.Info(LogMsgRecipesLoaded, "path", path, "loaded", len(report.Definitions), "skipped", len(report.Skipped))

	return report, nil
}

// Load reads and parses a recipe file, choosing the format by extension. A
// file that is not valid JSON or YAML is an error; a single recipe that does
// not fit RecipeFileDef is only recorded in Rejected.
func (l *recipeLoader) Load(path string) (*RecipeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadRecipeFileFailed, err)
	}

	var file *RecipeFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		file, err = decodeJSONRecipes(data)
	case ExtYAML, ExtYML:
		file, err = decodeYAMLRecipes(data)
	default:
		return nil, fmt.Errorf("%w: "+ErrMsgUnsupportedFileFmt, ErrInvalidConfig, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseRecipeFileFailed, path, errors.Join(ErrInvalidConfig, err))
	}

	return file, nil
}

func decodeJSONRecipes(data []byte) (*RecipeFile, error) {
	var raw jsonRecipeFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	file := &RecipeFile{Version: raw.Version, Description: raw.Description}
	for i, entry := range raw.Recipes {
		var def RecipeFileDef
		entryDec := json.NewDecoder(bytes.NewReader(entry))
		entryDec.DisallowUnknownFields()
		if err := entryDec.Decode(&def); err != nil {
			var name recipeName
			_ = json.Unmarshal(entry, &name)
			file.reject(i, name.Name, err)
			continue
		}
		file.accept(i, def)
	}
	return file, nil
}

func decodeYAMLRecipes(data []byte) (*RecipeFile, error) {
	var raw yamlRecipeFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	file := &RecipeFile{Version: raw.Version, Description: raw.Description}
	for i := range raw.Recipes {
		node := &raw.Recipes[i]
		var def RecipeFileDef
		if err := decodeYAMLStrict(node, &def); err != nil {
			var name recipeName
			_ = node.Decode(&name)
			file.reject(i, name.Name, err)
			continue
		}
		file.accept(i, def)
	}
	return file, nil
}

// decodeYAMLStrict decodes node rejecting unknown keys. Node.Decode ignores
// them, so the node is re-encoded and read back through a strict decoder.
func decodeYAMLStrict(node *yaml.Node, out any) error {
	encoded, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(encoded))
	dec.KnownFields(true)
	return dec.Decode(out)
}

func (f *RecipeFile) accept(index int, def RecipeFileDef) {
	f.Recipes = append(f.Recipes, def)
	f.positions = append(f.positions, index)
}

func (f *RecipeFile) reject(index int, name string, err error) {
	f.Rejected = append(f.Rejected, SkippedRecipe{
		Index: index,
		Name:  name,
		Err:   fmt.Errorf("%w: "+ErrMsgRecipeDecodeFmt, ErrInvalidConfig, index, err),
	})
}

// position maps an index into Recipes back to the index in the file. Files
// built in code have no positions and use their own indexes.
func (f *RecipeFile) position(i int) int {
	if i < len(f.positions) {
		return f.positions[i]
	}
	return i
}

// Validate applies defaults to every recipe and checks it. Recipes that fail
// are reported in LoadReport.Skipped; the error return is reserved for a
// file that cannot be used at all.
func (l *recipeLoader) Validate(file *RecipeFile, catalog ItemCatalog) (*LoadReport, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: recipe file is nil", ErrInvalidConfig)
	}

	report := &LoadReport{}
	seen := make(map[string]bool, len(file.Recipes))

	for i, raw := range file.Recipes {
		def := raw.toDefinition()
		index := file.position(i)

		if err := l.validateOne(index, def, seen, catalog); err != nil {
			report.Skipped = append(report.Skipped, SkippedRecipe{Index: index, Name: def.Name, Err: err})
			continue
		}

		seen[def.Name] = true
		report.Definitions = append(report.Definitions, def)
	}

	report.Skipped = append(report.Skipped, file.Rejected...)
	slices.SortStableFunc(report.Skipped, func(a, b SkippedRecipe) int { return a.Index - b.Index })

	return report, nil
}

func (l *recipeLoader) validateOne(i int, def domain.RecipeDefinition, seen map[string]bool, catalog ItemCatalog) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: "+ErrMsgEmptyRecipeNameFmt, ErrInvalidConfig, i)
	}

	if seen[def.Name] {
		return fmt.Errorf("%w: "+ErrMsgDuplicateRecipeFmt, ErrDuplicateRecipeName, def.Name)
	}

	if err := l.validate.Struct(def); err != nil {
		return fmt.Errorf("%w: "+ErrMsgRecipeValidationFmt, ErrInvalidConfig, def.Name, describeValidation(err))
	}

	if catalog == nil {
		return nil
	}

	lists := []struct {
		field string
		reqs  []domain.ItemRequirement
	}{
		{"products", def.Products},
		{"fail_products", def.FailProducts},
		{"tools", def.Tools},
		{"ingredients", def.Ingredients},
	}
	for _, list := range lists {
		for j, req := range list.reqs {
			if _, ok := catalog.Lookup(req.Key()); !ok {
				return fmt.Errorf("%w: "+ErrMsgUnknownItemFmt, ErrInvalidItem, def.Name, list.field, j, req.Key())
			}
		}
	}

	return nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

func (d RecipeFileDef) toDefinition() domain.RecipeDefinition {
	return domain.RecipeDefinition{
		Name:                strings.TrimSpace(d.Name),
		Category:            d.Category,
		Icon:                intOr(d.Icon, domain.DefaultIcon),
		Description:         d.Description,
		SuccessRate:         intOr(d.SuccessRate, domain.DefaultSuccessRate),
		CraftDuration:       intOr(d.CraftDuration, domain.DefaultCraftDuration),
		RequiredLevel:       intOr(d.RequiredLevel, domain.DefaultRequiredLevel),
		ExperienceAward:     intOr(d.ExperienceAward, domain.DefaultExperienceAward),
		InitiallyDiscovered: d.InitiallyDiscovered,
		Products:            d.Products,
		FailProducts:        d.FailProducts,
		Tools:               d.Tools,
		Ingredients:         d.Ingredients,
		Cues: domain.RecipeCues{
			Craft:   d.Cues.Craft.toCue(),
			Success: d.Cues.Success.toCue(),
			Failure: d.Cues.Failure.toCue(),
			Learn:   d.Cues.Learn.toCue(),
		},
	}
}

func (c *CueFileDef) toCue() domain.AudioCue {
	if c == nil || c.Name == "" {
		return domain.AudioCue{}
	}
	cue := domain.NewAudioCue(c.Name)
	cue.Volume = intOr(c.Volume, cue.Volume)
	cue.Pitch = intOr(c.Pitch, cue.Pitch)
	cue.Pan = intOr(c.Pan, cue.Pan)
	return cue
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
