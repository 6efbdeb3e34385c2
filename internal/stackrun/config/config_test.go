package config

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lepovirta.org/intstack/internal/duration"
	"go.lepovirta.org/intstack/internal/envvar"
	"go.lepovirta.org/intstack/internal/matcher"
	"go.lepovirta.org/intstack/internal/validation"
)

var envVarsMap = map[string]string{
	"SECOND_VALUE": "2",
	"NOT_A_NUMBER": "two",
}

const goodConfigJson = `
{
  "timeout": "10s",
  "programs": [
    {
      "name": "fill",
      "capacity": 3,
      "steps": [
        { "op": "push", "value": 7 },
        { "op": "push", "value": "${SECOND_VALUE}" },
        { "op": "push", "value": -9 },
        { "op": "top", "expect": "-9" },
        { "op": "full", "expect": "true" },
        { "op": "push", "value": 4, "fails": true }
      ]
    },
    {
      "name": "seeded",
      "seed": { "elements": [5, 8, 1, 9], "count": 2 },
      "steps": [
        { "op": "string", "expect": "/^IntStack\\(2/4\\)/" },
        { "op": "size" }
      ]
    }
  ]
}
`

func intPtr(i int) *int {
	return &i
}

var goodConfig = Config{
	Timeout: duration.New(10 * time.Second),
	Programs: []Program{
		{
			Name:     "fill",
			Capacity: intPtr(3),
			Steps: []Step{
				{Op: OpPush, Value: NewValue(7)},
				{Op: OpPush, Value: NewValue(2)},
				{Op: OpPush, Value: NewValue(-9)},
				{Op: OpTop, Expect: matcher.FromStringOrPanic("-9")},
				{Op: OpFull, Expect: matcher.FromStringOrPanic("true")},
				{Op: OpPush, Value: NewValue(4), Fails: true},
			},
		},
		{
			Name: "seeded",
			Seed: &Seed{
				Elements: []int{5, 8, 1, 9},
				Count:    2,
			},
			Steps: []Step{
				{Op: OpString, Expect: matcher.FromStringOrPanic(`/^IntStack\(2/4\)/`)},
				{Op: OpLen},
			},
		},
	},
}

func parse(t *testing.T, configJson string) (Config, error) {
	var cfg Config
	var envVars envvar.Vars
	envVars.FromMap(envVarsMap)
	err := cfg.Parse(envVars, bytes.NewBufferString(configJson))
	return cfg, err
}

func TestParseGood(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	cfg, err := parse(t, goodConfigJson)
	require.NoError(err, "config parse")

	require.Len(cfg.Programs, 2)
	assert.Equal(goodConfig.Timeout, cfg.Timeout)
	for i := range goodConfig.Programs {
		expected := goodConfig.Programs[i]
		actual := cfg.Programs[i]
		assert.Equal(expected.Name, actual.Name)
		assert.Equal(expected.Capacity, actual.Capacity)
		assert.Equal(expected.Seed, actual.Seed)
		require.Len(actual.Steps, len(expected.Steps))
		for j := range expected.Steps {
			assert.Equal(expected.Steps[j].Op, actual.Steps[j].Op)
			assert.Equal(expected.Steps[j].Value.String(), actual.Steps[j].Value.String())
			assert.Equal(expected.Steps[j].Value.Int(), actual.Steps[j].Value.Int())
			assert.Equal(expected.Steps[j].Expect.String(), actual.Steps[j].Expect.String())
			assert.Equal(expected.Steps[j].Fails, actual.Steps[j].Fails)
		}
	}
}

func TestParseSingleProgram(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	cfg, err := parse(t, `{ "capacity": 1, "steps": [ { "op": "empty" } ] }`)
	require.NoError(err)

	require.Len(cfg.Programs, 1)
	assert.Equal("main", cfg.Programs[0].Name)
	assert.Equal(intPtr(1), cfg.Programs[0].Capacity)
	assert.Equal(OpEmpty, cfg.Programs[0].Steps[0].Op)
}

func TestParseInvalidJson(t *testing.T) {
	assert := assert.New(t)

	_, err := parse(t, `{ "capacity": `)
	assert.ErrorContains(err, "failed to parse program")

	_, err = parse(t, `{ "capacity": 1, "steps": [ { "op": "shove" } ] }`)
	assert.ErrorContains(err, "unexpected value 'shove' for op")

	_, err = parse(t, `{ "capacity": 1, "steps": [ { "op": "push", "value": 1.5 } ] }`)
	assert.ErrorContains(err, "not an integer")
}

func TestParseBad(t *testing.T) {
	assert := assert.New(t)

	const badConfigJson = `
{
  "timeout": "-1s",
  "programs": [
    {
      "name": "both",
      "capacity": -1,
      "seed": { "elements": [1], "count": 2 },
      "steps": [
        { "op": "push" },
        { "op": "pop", "value": 1 },
        { "op": "push", "value": "${NOT_A_NUMBER}" },
        { "op": "push", "value": "${MISSING}" },
        { "op": "top", "fails": true, "expect": "1" },
        {}
      ]
    },
    {
      "name": "both",
      "steps": []
    }
  ]
}
`
	_, err := parse(t, badConfigJson)

	var validationErr *validation.ValidationError
	assert.ErrorAs(err, &validationErr)
	assert.Equal(
		`validation failed:
timeout: must not be negative
programs:
  0:
    capacity/seed: capacity and seed cannot be specified at the same time
    capacity: capacity -1 must not be negative
    steps:
      2:
        value: 'two' is not an integer
      3:
        value: no value found for keys: MISSING
      0:
        value: push requires a value
      1:
        value: pop does not take a value
      4:
        expect: a failing step cannot have an expected result
      5:
        op: op must be specified
    seed:
      count: count 2 must be between 0 and 1
  1:
    capacity/seed: either capacity or seed must be specified
    steps: at least one step must be specified
    name: name both is already used by program 0
`,
		err.Error(),
	)
}

func TestOpJSON(t *testing.T) {
	assert := assert.New(t)

	var op Op
	assert.NoError(json.Unmarshal([]byte(`"PEEK"`), &op))
	assert.Equal(OpTop, op)

	b, err := json.Marshal(OpClone)
	assert.NoError(err)
	assert.Equal(`"clone"`, string(b))

	b, err = json.Marshal(OpUndefined)
	assert.NoError(err)
	assert.Equal(`null`, string(b))

	assert.True(OpPush.IsMutation())
	assert.False(OpHash.IsMutation())
	assert.Equal("unknown(99)", Op(99).String())
}

func TestValueJSON(t *testing.T) {
	assert := assert.New(t)

	var v Value
	assert.NoError(json.Unmarshal([]byte(`"${X}"`), &v))
	assert.True(v.IsSet())
	assert.Equal("${X}", v.String())

	b, err := json.Marshal(v)
	assert.NoError(err)
	assert.Equal(`"${X}"`, string(b))

	assert.NoError(v.resolve(map[string]string{"X": " 12 "}))
	assert.Equal(12, v.Int())
	b, err = json.Marshal(v)
	assert.NoError(err)
	assert.Equal(`12`, string(b))

	assert.NoError(json.Unmarshal([]byte(`null`), &v))
	assert.False(v.IsSet())

	assert.Error(json.Unmarshal([]byte(`true`), &v))
}

func TestCliFlags(t *testing.T) {
	assert := assert.New(t)
	var out bytes.Buffer

	var envVars envvar.Vars
	envVars.FromMap(map[string]string{
		"INTSTACK_PROGRAM_PATH": "/etc/intstack/program.json",
	})

	var flags CliFlags
	err := flags.Parse(envVars, []string{"otk-intstack", "-run", "-parallelism", "2"}, &out)
	assert.NoError(err)
	assert.True(flags.Run)
	assert.False(flags.Json)
	assert.Equal(2, flags.Parallelism)
	assert.Equal("/etc/intstack/program.json", flags.ProgramPath)

	flags = CliFlags{}
	envVars.FromMap(map[string]string{})
	err = flags.Parse(envVars, []string{"otk-intstack"}, &out)
	assert.NoError(err)
	assert.Equal(StdinPath, flags.ProgramPath)

	flags = CliFlags{}
	err = flags.Parse(envVars, []string{"otk-intstack", "-parallelism", "-1"}, &out)
	assert.ErrorContains(err, "parallelism must not be negative")
}
