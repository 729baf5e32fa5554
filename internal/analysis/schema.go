package analysis

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/myrjola/existyet/internal/errors"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed result.schema.json
var resultSchemaDefinition []byte

// maxReportedSchemaErrors keeps violation reasons readable.
const maxReportedSchemaErrors = 5

var resultSchema = mustCompileSchema(resultSchemaDefinition)

func mustCompileSchema(definition []byte) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(definition))
	if err != nil {
		panic(fmt.Sprintf("compile result schema: %v", err))
	}
	return schema
}

// validateShape checks the decoded result object against the result schema and describes every problem found.
func validateShape(document any) error {
	result, err := resultSchema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return errors.Wrap(err, "validate result")
	}
	if result.Valid() {
		return nil
	}
	resultErrors := result.Errors()
	reasons := make([]string, 0, min(len(resultErrors), maxReportedSchemaErrors))
	for i, resultError := range resultErrors {
		if i == maxReportedSchemaErrors {
			reasons = append(reasons, fmt.Sprintf("and %d more", len(resultErrors)-i))
			break
		}
		reasons = append(reasons, resultError.String())
	}
	return errors.New(strings.Join(reasons, "; "))
}
