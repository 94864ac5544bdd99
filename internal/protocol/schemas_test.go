package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	helloSchema := compile("hello.schema.json")
	welcomeSchema := compile("welcome.schema.json")
	actSchema := compile("act.schema.json")
	obsSchema := compile("obs.schema.json")

	var hello any
	_ = json.Unmarshal([]byte(`{
	  "type":"HELLO",
	  "protocol_version":"1.0",
	  "client_name":"overseer1"
	}`), &hello)
	validate(helloSchema, hello)

	var welcome any
	_ = json.Unmarshal([]byte(`{
	  "type":"WELCOME",
	  "protocol_version":"1.0",
	  "session_id":"9f6bca2e-0c3d-4a53-9ee9-6a6f2c5b1f27",
	  "world_params":{
	    "tick_rate_hz":10,
	    "width":64,
	    "height":64,
	    "seed":1337
	  }
	}`), &welcome)
	validate(welcomeSchema, welcome)

	var act any
	_ = json.Unmarshal([]byte(`{
	  "type":"ACT",
	  "protocol_version":"1.0",
	  "tick":0,
	  "commands":[
	    {"id":"c1","type":"DESIGNATE_MINE","pos":[4,5]},
	    {"id":"c2","type":"ADD_STOCKPILE","pos":[2,2],"accepts":["STONE"]},
	    {"id":"c3","type":"SPAWN_WORKER","pos":[1,1],"name":"Grak","capabilities":["MINER","CARRIER"]}
	  ]
	}`), &act)
	validate(actSchema, act)

	var obs any
	_ = json.Unmarshal([]byte(`{
	  "type":"OBS",
	  "protocol_version":"1.0",
	  "tick":3,
	  "digest":"deadbeef",
	  "world":{"tick_rate_hz":10,"width":64,"height":64,"seed":1337},
	  "tiles":[{"pos":[4,5],"kind":"WALL"}],
	  "workers":[{"id":"W000001","name":"Grak","pos":[1,1],"capabilities":["MINER"],"job_id":"J000001"}],
	  "items":[{"id":"IT000001","pos":[4,5],"kind":"STONE","carriable":true}],
	  "stockpiles":[{"id":"S000001","pos":[2,2],"accepts":["STONE"]}],
	  "designations":[{"id":"D000001","pos":[4,5],"state":"CONSUMED"}],
	  "jobs":{
	    "board":[{"id":"J000002","kind":"HAUL","priority":0,"source":[4,5],"dest":[2,2]}],
	    "active":[{"id":"J000001","kind":"MINE","priority":0,"target":[4,5],"assigned_to":"W000001"}]
	  },
	  "events":[{"type":"JOB_DONE","job_id":"J000001"}]
	}`), &obs)
	validate(obsSchema, obs)
}

// OBS frames built by the server must themselves satisfy the schema, so the
// samples above deliberately mirror what internal/sim/world emits.
func TestObsRoundTripKeepsRequiredFields(t *testing.T) {
	raw := []byte(`{"type":"OBS","protocol_version":"1.0","tick":0,"world":{"tick_rate_hz":10,"width":8,"height":8,"seed":1},"workers":[],"jobs":{"board":[],"active":[]}}`)
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	s, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", "obs.schema.json"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := s.Validate(v); err != nil {
		t.Fatalf("minimal frame rejected: %v", err)
	}
}
