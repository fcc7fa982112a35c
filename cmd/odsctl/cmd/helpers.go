package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/odsdb/pkg/api"
	"github.com/ssargent/odsdb/pkg/codec"
	"github.com/ssargent/odsdb/pkg/diff"
)

// Output formats understood by writeOutline
const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatText  = "text"
	formatTable = "table"
)

// newCodec builds a codec from the loaded decode settings
func newCodec() api.IOutlineCodec {
	return container.GetCodecFactory().CreateCodec(cfg.Decode.CodecConfig())
}

// openStore opens the outline store in the configured data directory
func openStore() (api.IOutlineStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return container.GetStorageFactory().CreateStorage(cfg.DataDir, newCodec())
}

// readInput reads a whole file, or stdin when path is "-"
func readInput(r io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(r)
	}
	return os.ReadFile(filepath.Clean(path))
}

// writeOutput writes data to path, or to w when path is empty or "-"
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(filepath.Clean(path), data, 0600)
}

// parseOutline reads an outline document in format. An empty format means
// JSON for .json files and YAML for everything else.
func parseOutline(path, format string, data []byte) (*codec.Outline, error) {
	if format == "" {
		format = formatYAML
		if strings.EqualFold(filepath.Ext(path), ".json") {
			format = formatJSON
		}
	}

	var o codec.Outline
	switch format {
	case formatJSON:
		if err := json.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("invalid JSON outline: %w", err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &o); err != nil {
			return nil, fmt.Errorf("invalid YAML outline: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown input format %q (want json or yaml)", format)
	}
	return &o, nil
}

// writeOutline renders an outline in the requested format
func writeOutline(w io.Writer, o *codec.Outline, format string, offsets bool) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(o)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(o); err != nil {
			return err
		}
		return encoder.Close()
	case formatText:
		_, err := io.WriteString(w, strings.Join(diff.Render(o, diff.Options{Offsets: offsets}), ""))
		return err
	case formatTable:
		return writeOutlineTable(w, o)
	default:
		return fmt.Errorf("unknown output format %q (want json, yaml, text or table)", format)
	}
}

// writeOutlineTable lists the entries one per row
func writeOutlineTable(w io.Writer, o *codec.Outline) error {
	if len(o.Entries) == 0 {
		_, err := fmt.Fprintln(w, "No entries found")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tLEVEL\tID\tTITLE\tTYPE\tCLASS\tALIAS\tFORMULAS")
	for _, e := range o.Entries {
		title := e.Title
		if r := []rune(title); len(r) > 40 {
			title = string(r[:37]) + "..."
		}
		formulas := ""
		if e.Formulas != 0 {
			formulas = e.Formulas.String()
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			e.Group, e.Level, e.ID, title, e.ResourceType, e.ResourceClass, e.Alias, formulas)
	}
	return tw.Flush()
}
