package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/loomctl/loom/internal/dispatch"
	"github.com/loomctl/loom/internal/ui"
)

// printData renders a result payload for human reading. Flat string
// maps become aligned tables; everything else prints as indented JSON.
func printData(data any) {
	switch v := data.(type) {
	case map[string]string:
		tbl := ui.NewTable(2)
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.AddRow(ui.ID(k), v[k])
		}
		fmt.Print(tbl.String())
	case json.RawMessage:
		printJSON([]byte(v))
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			fmt.Println(v)
			return
		}
		printJSON(encoded)
	}
}

func printJSON(raw []byte) {
	var buf any
	if err := json.Unmarshal(raw, &buf); err != nil {
		fmt.Println(string(raw))
		return
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(buf)
}

// printStreamEvent renders one stream envelope in text mode. Data
// events with a text payload print as prose; the framing markers go to
// stderr so piped output stays clean.
func printStreamEvent(event dispatch.Event) {
	switch event.Kind {
	case dispatch.EventStreamStart:
		if verbose {
			fmt.Fprintln(os.Stderr, ui.Hint("stream "+event.StreamID))
		}
	case dispatch.EventData:
		if text, ok := eventText(event.Payload); ok {
			fmt.Print(text)
			return
		}
		encoded, err := json.Marshal(event.Payload)
		if err == nil {
			fmt.Println(string(encoded))
		}
	case dispatch.EventStreamEnd:
		fmt.Println()
	case dispatch.EventInterrupt:
		fmt.Println()
		fmt.Fprintln(os.Stderr, ui.Error(event.Err))
	}
}

// eventText pulls the displayable text out of a data event payload.
func eventText(payload any) (string, bool) {
	m, ok := payload.(map[string]any)
	if !ok {
		return "", false
	}
	for _, key := range []string{"text", "content", "delta"} {
		if s, ok := m[key].(string); ok {
			return s, true
		}
	}
	return "", false
}
