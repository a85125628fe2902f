// Package modelfile provides a host provider for model exports saved as
// JSON or YAML documents.
package modelfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

// Provider implements the host.Provider interface for model files.
// The format is chosen by file extension: .yaml/.yml parse as YAML,
// everything else as JSON.
type Provider struct {
	path   string
	cfg    host.Config
	logger *slog.Logger
}

// New creates a new model file provider instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Provider{logger: logger}
}

// Connect checks that the model file exists and remembers its path.
func (p *Provider) Connect(ctx context.Context, cfg host.Config) error {
	if cfg.Path == "" {
		return fmt.Errorf("modelfile host requires a path")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return fmt.Errorf("failed to stat model file: %w", err)
	}

	p.path = cfg.Path
	p.cfg = cfg
	return nil
}

// Load re-reads and parses the model file.
func (p *Provider) Load(ctx context.Context) (*host.Model, error) {
	if p.path == "" {
		return nil, fmt.Errorf("model file not configured")
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var doc fileModel
	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML model: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON model: %w", err)
		}
	}

	return doc.toModel(p.logger), nil
}

// Close releases nothing; the file is re-read on every Load.
func (p *Provider) Close() error { return nil }

// fileModel is the on-disk document layout.
type fileModel struct {
	Project  fileProject   `json:"project" yaml:"project"`
	Types    []fileType    `json:"element_types" yaml:"element_types"`
	Elements []fileElement `json:"elements" yaml:"elements"`
}

type fileProject struct {
	Name       string `json:"name" yaml:"name"`
	LengthUnit string `json:"length_unit" yaml:"length_unit"`
}

type fileType struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Family     string          `json:"family" yaml:"family"`
	Parameters []fileParameter `json:"parameters" yaml:"parameters"`
}

type fileElement struct {
	Name       string          `json:"name" yaml:"name"`
	Family     string          `json:"family" yaml:"family"`
	TypeID     string          `json:"type_id" yaml:"type_id"`
	Parameters []fileParameter `json:"parameters" yaml:"parameters"`
}

type fileParameter struct {
	Name    string `json:"name" yaml:"name"`
	Storage string `json:"storage" yaml:"storage"`
	Value   any    `json:"value" yaml:"value"`
}

// toModel converts the document into a host model. Broken references
// and unknown units degrade with a log line instead of failing the load.
func (doc *fileModel) toModel(logger *slog.Logger) *host.Model {
	model := &host.Model{ProjectName: doc.Project.Name}
	if doc.Project.LengthUnit != "" {
		if u, ok := core.ParseUnit(doc.Project.LengthUnit); ok {
			model.Unit = u
			model.HasUnit = true
		} else {
			logger.Warn("model declares unknown length unit", slog.String("unit", doc.Project.LengthUnit))
		}
	}

	types := make(map[string]*host.ModelType, len(doc.Types))
	for _, ft := range doc.Types {
		mt := &host.ModelType{Name: ft.Name, Family: ft.Family}
		for _, fp := range ft.Parameters {
			mt.Params = append(mt.Params, fp.toParameter())
		}
		types[ft.ID] = mt
	}

	for _, fe := range doc.Elements {
		el := &host.ModelElement{ElementName: fe.Name, FamilyName: fe.Family}
		for _, fp := range fe.Parameters {
			el.Params = append(el.Params, fp.toParameter())
		}
		if fe.TypeID != "" {
			if t, ok := types[fe.TypeID]; ok {
				el.ElementType = t
			} else {
				logger.Debug("element references unknown type",
					slog.String("element", fe.Name), slog.String("type_id", fe.TypeID))
			}
		}
		model.Elements = append(model.Elements, el)
	}

	return model
}

// toParameter converts one document parameter. When the storage kind is
// omitted it is inferred from the decoded value type.
func (fp fileParameter) toParameter() core.Parameter {
	storage := fp.Storage
	if storage == "" {
		storage = inferStorage(fp.Value)
	}

	kind := core.ParseStorageKind(storage)
	if fp.Value == nil {
		return core.NewEmptyParameter(fp.Name, kind)
	}

	switch kind {
	case core.StorageNumeric:
		if v, ok := toFloat(fp.Value); ok {
			return core.NewNumericParameter(fp.Name, v)
		}
	case core.StorageInteger:
		if v, ok := toInt(fp.Value); ok {
			return core.NewIntegerParameter(fp.Name, v)
		}
	case core.StorageText:
		if s, ok := fp.Value.(string); ok {
			return core.NewTextParameter(fp.Name, s)
		}
	}
	return core.NewEmptyParameter(fp.Name, kind)
}

// inferStorage maps a decoded value type to a storage kind name.
func inferStorage(v any) string {
	switch v.(type) {
	case string:
		return "text"
	case int, int64:
		return "integer"
	case float64:
		return "numeric"
	default:
		return ""
	}
}

// toFloat widens decoded numbers. YAML decodes whole numbers as int,
// JSON decodes every number as float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// toInt narrows decoded numbers, accepting floats only when integral.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Ensure Provider implements host.Provider interface
var _ host.Provider = (*Provider)(nil)
