package ports

import "context"

// SchematicNetlister turns a schematic cell into SPICE subcircuit text.
type SchematicNetlister interface {
	GenerateCell(ctx context.Context, library, cell string) (string, error)
}
