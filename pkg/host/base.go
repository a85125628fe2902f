package host

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/core"
)

// BaseDBProvider provides common database/sql functionality for
// database-backed host providers. Embed this struct in concrete
// providers to get standard Close and snapshot-loading implementations:
// the bundled database providers share one portable schema and differ
// only in how they connect.
//
// Expected schema (ANSI SQL, no vendor extensions):
//
//	project(name, length_unit)                        -- zero or one row
//	element_types(id, name, family)
//	elements(id, name, family, type_id)
//	parameters(owner_id, owner_kind, name, storage,
//	           numeric_value, integer_value, text_value, position)
//
// owner_kind is 'element' or 'type'; storage is 'numeric', 'integer' or
// 'text'. Only the value column matching the storage kind is read; a
// NULL there means "no value set".
type BaseDBProvider struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseDBProvider) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing host database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseDBProvider) IsConnected() bool {
	return b.DB != nil
}

// LoadModel reads a full element snapshot from the shared schema.
// Element and parameter order follows the source ordering columns, so
// repeated loads see identical enumeration order.
func (b *BaseDBProvider) LoadModel(ctx context.Context) (*Model, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	model := &Model{}
	b.loadProject(ctx, model)

	types, err := b.loadTypes(ctx)
	if err != nil {
		return nil, err
	}

	ordered, elements, err := b.loadElements(ctx, types)
	if err != nil {
		return nil, err
	}

	if err := b.loadParameters(ctx, elements, types); err != nil {
		return nil, err
	}

	model.Elements = make([]core.Element, len(ordered))
	for i, el := range ordered {
		model.Elements[i] = el
	}
	return model, nil
}

// loadProject fills in the project row when present. A missing table or
// row is not an error: schedule-style dumps often omit it and the
// caller falls back to its own unit configuration.
func (b *BaseDBProvider) loadProject(ctx context.Context, model *Model) {
	var name, unit sql.NullString
	err := b.DB.QueryRowContext(ctx, "SELECT name, length_unit FROM project").Scan(&name, &unit)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Debug("no readable project row", slog.String("error", err.Error()))
		}
		return
	}

	model.ProjectName = name.String
	if unit.Valid {
		if u, ok := core.ParseUnit(unit.String); ok {
			model.Unit = u
			model.HasUnit = true
		} else if b.Logger != nil {
			b.Logger.Warn("project declares unknown length unit", slog.String("unit", unit.String))
		}
	}
}

// loadTypes reads all element types keyed by id.
func (b *BaseDBProvider) loadTypes(ctx context.Context) (map[int64]*ModelType, error) {
	rows, err := b.DB.QueryContext(ctx, "SELECT id, name, family FROM element_types ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query element types: %w", err)
	}
	defer func() { _ = rows.Close() }()

	types := make(map[int64]*ModelType)
	for rows.Next() {
		var id int64
		var name, family sql.NullString
		if err := rows.Scan(&id, &name, &family); err != nil {
			return nil, fmt.Errorf("failed to scan element type: %w", err)
		}
		types[id] = &ModelType{Name: name.String, Family: family.String}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating element types: %w", err)
	}
	return types, nil
}

// loadElements reads all elements in source order, resolving type
// references. An element pointing at a missing type stays untyped.
func (b *BaseDBProvider) loadElements(ctx context.Context, types map[int64]*ModelType) ([]*ModelElement, map[int64]*ModelElement, error) {
	rows, err := b.DB.QueryContext(ctx, "SELECT id, name, family, type_id FROM elements ORDER BY id")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query elements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ordered []*ModelElement
	elements := make(map[int64]*ModelElement)
	for rows.Next() {
		var id int64
		var name, family sql.NullString
		var typeID sql.NullInt64
		if err := rows.Scan(&id, &name, &family, &typeID); err != nil {
			return nil, nil, fmt.Errorf("failed to scan element: %w", err)
		}

		el := &ModelElement{ElementName: name.String, FamilyName: family.String}
		if typeID.Valid {
			if t, ok := types[typeID.Int64]; ok {
				el.ElementType = t
			} else if b.Logger != nil {
				b.Logger.Debug("element references unknown type",
					slog.Int64("element_id", id), slog.Int64("type_id", typeID.Int64))
			}
		}
		ordered = append(ordered, el)
		elements[id] = el
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating elements: %w", err)
	}
	return ordered, elements, nil
}

// loadParameters attaches parameters to their owners in position order.
// Rows with an unknown owner are skipped rather than failing the load.
func (b *BaseDBProvider) loadParameters(ctx context.Context, elements map[int64]*ModelElement, types map[int64]*ModelType) error {
	rows, err := b.DB.QueryContext(ctx, `
		SELECT owner_id, owner_kind, name, storage, numeric_value, integer_value, text_value
		FROM parameters
		ORDER BY owner_id, position
	`)
	if err != nil {
		return fmt.Errorf("failed to query parameters: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var ownerID int64
		var ownerKind, name, storage sql.NullString
		var num sql.NullFloat64
		var integer sql.NullInt64
		var text sql.NullString
		if err := rows.Scan(&ownerID, &ownerKind, &name, &storage, &num, &integer, &text); err != nil {
			return fmt.Errorf("failed to scan parameter: %w", err)
		}

		p := buildParameter(name.String, storage.String, num, integer, text)
		switch ownerKind.String {
		case "element":
			if el, ok := elements[ownerID]; ok {
				el.Params = append(el.Params, p)
			}
		case "type":
			if t, ok := types[ownerID]; ok {
				t.Params = append(t.Params, p)
			}
		default:
			if b.Logger != nil {
				b.Logger.Debug("parameter with unknown owner kind",
					slog.String("owner_kind", ownerKind.String), slog.String("name", name.String))
			}
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating parameters: %w", err)
	}
	return nil
}

// buildParameter converts one parameter row into a core.Parameter.
// A NULL in the kind's value column yields an unset parameter.
func buildParameter(name, storage string, num sql.NullFloat64, integer sql.NullInt64, text sql.NullString) core.Parameter {
	kind := core.ParseStorageKind(storage)
	switch kind {
	case core.StorageNumeric:
		if num.Valid {
			return core.NewNumericParameter(name, num.Float64)
		}
	case core.StorageInteger:
		if integer.Valid {
			return core.NewIntegerParameter(name, integer.Int64)
		}
	case core.StorageText:
		if text.Valid {
			return core.NewTextParameter(name, text.String)
		}
	}
	return core.NewEmptyParameter(name, kind)
}
