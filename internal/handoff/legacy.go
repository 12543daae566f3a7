package handoff

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/wordmap/wordmap/internal/deck"
)

const wordsSchema = `{
	"type": "array",
	"minItems": 1,
	"items": {
		"type": "object",
		"required": ["id", "label", "details"],
		"properties": {
			"id": {"type": "integer"},
			"label": {"type": "string"},
			"details": {"type": "string"}
		}
	}
}`

const editSchema = `{
	"type": "object",
	"required": ["id", "words"],
	"properties": {
		"id": {"type": "integer"},
		"name": {"type": ["string", "null"]},
		"words": ` + wordsSchema + `
	}
}`

var schemaSources = map[Kind]string{
	KindStudy: wordsSchema,
	KindTest:  wordsSchema,
	KindEdit:  editSchema,
}

// schemaCache caches compiled schemas by kind.
var schemaCache sync.Map // map[Kind]*jsonschema.Schema

func compiledSchema(k Kind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(k); ok {
		return cached.(*jsonschema.Schema), nil
	}

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaSources[k]))
	if err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", k, err)
	}
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://handoff/%s.json", k)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(k, compiled)
	return compiled, nil
}

// DecodeLegacy decodes a blob stored under one of the legacy keys. Blobs
// that fail to parse or do not match the expected shape yield false.
func DecodeLegacy(key string, raw []byte) (Payload, bool) {
	kind, ok := KindForKey(key)
	if !ok {
		return Payload{}, false
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return Payload{}, false
	}
	schema, err := compiledSchema(kind)
	if err != nil {
		return Payload{}, false
	}
	if err := schema.Validate(inst); err != nil {
		return Payload{}, false
	}

	var d deck.Resolved
	if kind == KindEdit {
		if err := json.Unmarshal(raw, &d); err != nil {
			return Payload{}, false
		}
		if d.Name == "" {
			d.Name = EditFallbackName
		}
	} else if err := json.Unmarshal(raw, &d.Words); err != nil {
		return Payload{}, false
	}
	return Payload{Kind: kind, Deck: d}, true
}

// DecodeStore decodes a dump of legacy storage: a JSON object mapping keys
// to blobs, where each blob is a JSON string as browsers store it. Keys are
// tried in the order study, test, edit and the first valid one wins.
func DecodeStore(raw []byte) (Payload, bool) {
	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return Payload{}, false
	}
	for _, key := range []string{KeyStudy, KeyTest, KeyEdit} {
		blob, ok := entries[key]
		if !ok {
			continue
		}
		if p, ok := DecodeLegacy(key, []byte(blob)); ok {
			return p, true
		}
	}
	return Payload{}, false
}
