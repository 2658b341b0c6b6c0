package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed commitgate.schema.json
var schemaJSON []byte

const schemaName = "commitgate.schema.json"

var (
	schemaPrinter = message.NewPrinter(language.English)
	fileSchema    = mustCompileSchema()
)

func mustCompileSchema() *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		panic(fmt.Sprintf("config: parse embedded %s: %v", schemaName, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaName, doc); err != nil {
		panic(fmt.Sprintf("config: add %s: %v", schemaName, err))
	}
	sch, err := c.Compile(schemaName)
	if err != nil {
		panic(fmt.Sprintf("config: compile %s: %v", schemaName, err))
	}
	return sch
}

// ValidateBytes checks raw commitgate.yaml contents against the config
// file schema before unmarshalling, so typos surface as errors instead
// of being silently dropped.
func ValidateBytes(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := fileSchema.Validate(doc); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			var msgs []string
			collectSchemaErrors(ve, &msgs)
			return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func collectSchemaErrors(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(schemaPrinter)))
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
