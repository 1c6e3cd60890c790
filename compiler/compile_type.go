package compiler

import (
	"fmt"
	"strings"

	"github.com/ha1tch/preqlc/pqltypes"
	"github.com/ha1tch/preqlc/sqlir"
)

// CompileType compiles a Preql type to a DDL column-type fragment,
// matching spec.md §4.1's compile_type dispatch by variant.
func CompileType(s *State, t pqltypes.Type) (string, error) {
	return compileType(s, t, false)
}

func compileType(s *State, t pqltypes.Type, nullable bool) (string, error) {
	switch v := t.(type) {
	case pqltypes.Primitive:
		return compilePrimitive(v, nullable)
	case pqltypes.OptionalType:
		return compileType(s, v.Inner, true)
	case pqltypes.IdType:
		ddl := s.Dialect().IDColumnDDL()
		if !nullable {
			ddl += " NOT NULL"
		}
		return ddl, nil
	case pqltypes.RelationalColumn:
		// Foreign-key is integer to the target table's id (spec.md §4.1).
		ddl := "INTEGER"
		if !nullable {
			ddl += " NOT NULL"
		}
		return ddl, nil
	case pqltypes.DatumColumn:
		return compileType(s, v.Inner, nullable)
	default:
		return "", fmt.Errorf("pqltypes: unknown type %s in compile_type", t)
	}
}

func compilePrimitive(p pqltypes.Primitive, nullable bool) (string, error) {
	ddl, ok := map[pqltypes.PrimitiveName]string{
		pqltypes.Int:      "INTEGER",
		pqltypes.String:   "VARCHAR(4000)",
		pqltypes.Float:    "FLOAT",
		pqltypes.Bool:     "BOOLEAN",
		pqltypes.Text:     "TEXT",
		pqltypes.Datetime: "TIMESTAMP",
	}[p.Name]
	if !ok {
		return "", fmt.Errorf("pqltypes: unknown primitive %q", p.Name)
	}
	if !nullable {
		ddl += " NOT NULL"
	}
	return ddl, nil
}

// CompileTypeDef flattens table's columns via dotted paths and emits a
// CREATE TABLE statement, matching spec.md §4.1's compile_type_def.
func CompileTypeDef(s *State, table *pqltypes.TableType) (sqlir.Node, error) {
	var columns []string
	var posts []string
	var pkNames []string
	seenPK := make(map[string]bool)
	for _, pk := range table.PrimaryKeys {
		name := strings.Join(pk, "_")
		if !seenPK[name] {
			seenPK[name] = true
			pkNames = append(pkNames, name)
		}
	}

	for _, c := range table.FlattenType() {
		colDDL, err := CompileType(s, c.Type)
		if err != nil {
			return nil, err
		}
		colName := pqltypes.SQLFriendlyName(c.Path)
		columns = append(columns, fmt.Sprintf("%s %s", colName, colDDL))

		if rc, ok := c.Type.(pqltypes.RelationalColumn); ok && !table.Temporary {
			// Many engines disallow FK constraints on temporary tables
			// (e.g. Postgres: constraints on temp tables may reference
			// only temp tables), so this clause is only emitted for
			// non-temporary tables (spec.md §4.1).
			posts = append(posts, fmt.Sprintf("FOREIGN KEY(%s) REFERENCES %s(id)", colName, rc.Table.Name))
		}
	}

	if len(pkNames) > 0 {
		posts = append(posts, fmt.Sprintf("PRIMARY KEY (%s)", strings.Join(pkNames, ", ")))
	}

	command := "CREATE TABLE IF NOT EXISTS"
	if table.Temporary {
		command = "CREATE TEMPORARY TABLE"
	}

	all := append(columns, posts...)
	text := fmt.Sprintf("%s %s (%s)", command, table.Name, strings.Join(all, ", "))
	return sqlir.RawSql{Type: pqltypes.Null, Text: text}, nil
}
