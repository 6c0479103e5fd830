package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeager/mqtt-inspector/internal/core/inspect"
)

func sampleMessages() []inspect.Message {
	at := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return []inspect.Message{
		{Topic: "home/temp", Payload: []byte("21.5"), Text: "21.5", QoS: 1, ReceivedAt: at},
		{Topic: "home/door", Payload: []byte("open"), Text: "open", QoS: 0, Retain: true, ReceivedAt: at.Add(time.Second)},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat(" json ")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatForPath("out.json"))
	assert.Equal(t, FormatJSON, FormatForPath("out.JSON"))
	assert.Equal(t, FormatCSV, FormatForPath("out.csv"))
	assert.Equal(t, FormatCSV, FormatForPath("out"))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleMessages()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "topic,payload,qos,retain,timestamp", lines[0])
	assert.Equal(t, "home/temp,21.5,1,false,2026-03-14T09:26:53Z", lines[1])
	assert.Equal(t, "home/door,open,0,true,2026-03-14T09:26:54Z", lines[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleMessages()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "home/temp", got[0]["topic"])
	assert.Equal(t, "21.5", got[0]["payload"])
	assert.Equal(t, float64(1), got[0]["qos"])
	assert.Equal(t, true, got[1]["retain"])
	assert.Equal(t, "2026-03-14T09:26:53Z", got[0]["timestamp"])
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestCollect(t *testing.T) {
	agg := inspect.NewAggregator(0)
	agg.Record(inspect.Message{Topic: "a", Text: "1"})
	agg.Record(inspect.Message{Topic: "b", Text: "2"})
	agg.Record(inspect.Message{Topic: "a", Text: "3"})

	one := Collect(agg, "a")
	require.Len(t, one, 2)
	assert.Equal(t, "1", one[0].Text)

	all := Collect(agg, "")
	require.Len(t, all, 3)
	assert.Equal(t, []string{"1", "3", "2"}, []string{all[0].Text, all[1].Text, all[2].Text})
}
