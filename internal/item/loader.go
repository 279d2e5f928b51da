package item

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/logger"
	"github.com/osse101/RecipeCraft_Go/internal/validation"
)

// Sentinel errors for item loader
var (
	ErrDuplicateItem = errors.New("duplicate item key")

	ErrInvalidConfig = errors.New("invalid configuration")
)

// recipeNoteTag matches the note tag that marks an item as a recipe book, e.g. <cgmvrecipe:Fire Potion>
var recipeNoteTag = regexp.MustCompile(`(?i)<cgmvrecipe:\s*([^>]+?)\s*>`)

// Config represents the configuration file for items
type Config struct {
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description" yaml:"description"`

	Items []Def `json:"items" yaml:"items"`
}

// Def represents a single item definition in the file
type Def struct {
	Name          string `json:"name" yaml:"name"`
	Type          string `json:"type" yaml:"type"`
	ID            int    `json:"id" yaml:"id"`
	Description   string `json:"description" yaml:"description"`
	Consumable    *bool  `json:"consumable" yaml:"consumable"` // defaults to true
	TeachesRecipe string `json:"teaches_recipe" yaml:"teaches_recipe"`
	Note          string `json:"note" yaml:"note"` // free text; may carry a recipe tag
}

// Loader handles loading and validating item configuration
type Loader interface {
	Load(path string) (*Config, error)
	Validate(config *Config) error
}

type itemLoader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &itemLoader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

// LoadCatalog reads, validates and indexes an items file
func LoadCatalog(ctx context.Context, path string) (*Catalog, error) {
	loader := NewLoader()

	config, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	if err := loader.Validate(config); err != nil {
		return nil, err
	}

	catalog := NewCatalog(config.Items)
	logger.FromContext(ctx).Info(LogMsgCatalogLoaded, "path", path, "items", catalog.Len())
	return catalog, nil
}

// Load reads and parses an items file (JSON or YAML, by extension)
func (l *itemLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadConfigFileFailed, err)
	}

	var config Config
	var schemaErr error
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtJSON:
		if err = json.Unmarshal(data, &config); err == nil {
			schemaErr = l.schemaValidator.ValidateBytes(data, ItemsSchemaPath)
		}
	case ExtYAML, ExtYML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err = dec.Decode(&config); err == nil {
			schemaErr = l.schemaValidator.ValidateYAML(data, ItemsSchemaPath)
		}
	default:
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidConfig, ErrMsgUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgParseConfigFailed, err)
	}
	if schemaErr != nil {
		return nil, fmt.Errorf("%w: "+ErrFmtSchemaValidation, ErrInvalidConfig, path, schemaErr)
	}

	return &config, nil
}

// Validate checks the item configuration for errors
func (l *itemLoader) Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}

	if len(config.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	seen := make(map[domain.ItemKey]string, len(config.Items))
	for i := range config.Items {
		if err := validateItemDef(i, &config.Items[i], seen); err != nil {
			return err
		}
	}

	return nil
}

func validateItemDef(index int, def *Def, seen map[domain.ItemKey]string) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, index)
	}

	itemType, err := domain.ParseItemType(def.Type)
	if err != nil {
		return fmt.Errorf(ErrFmtItemInvalidType, ErrInvalidConfig, def.Name, def.Type)
	}

	if def.ID < 1 {
		return fmt.Errorf(ErrFmtItemInvalidID, ErrInvalidConfig, def.Name, def.ID)
	}

	key := domain.ItemKey{Type: itemType, ID: def.ID}
	if other, dup := seen[key]; dup {
		return fmt.Errorf(ErrFmtItemDuplicateKey, ErrDuplicateItem, key, other, def.Name)
	}
	seen[key] = def.Name

	return nil
}

// toItem converts a validated definition into a catalog item
func (d Def) toItem() *domain.Item {
	itemType, _ := domain.ParseItemType(d.Type)

	consumable := true
	if d.Consumable != nil {
		consumable = *d.Consumable
	}

	teaches := strings.TrimSpace(d.TeachesRecipe)
	if teaches == "" {
		teaches = RecipeFromNote(d.Note)
	}

	return &domain.Item{
		Key:           domain.ItemKey{Type: itemType, ID: d.ID},
		Name:          strings.TrimSpace(d.Name),
		Description:   d.Description,
		Consumable:    consumable,
		TeachesRecipe: teaches,
	}
}

// RecipeFromNote extracts the recipe name from a <cgmvrecipe:Name> note tag, or "" when absent
func RecipeFromNote(note string) string {
	m := recipeNoteTag.FindStringSubmatch(note)
	if m == nil {
		return ""
	}
	return m[1]
}
