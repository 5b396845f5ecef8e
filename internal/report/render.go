package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/ardnew/ehciarena/pkg"
)

// Output formats accepted by [Render].
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Render writes r to w in the given format.
func Render(w io.Writer, r *Report, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatText, "":
		return renderText(w, r)
	case FormatJSON:
		data, err = json.MarshalIndent(r, "", "  ")
		data = append(data, '\n')
	case FormatYAML, "yml":
		data, err = yaml.Marshal(r)
	case FormatTOML:
		data, err = toml.Marshal(r)
	default:
		return fmt.Errorf("report format %q: %w", format, pkg.ErrUnsupportedFormat)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INSTANCE\tARENA\tBASE\tEND\tSIZE\tALIGN\tOK\tAVAILABLE")
	for _, in := range r.Instances {
		for _, a := range []struct {
			name string
			Arena
		}{
			{"qh", in.QueueHeads},
			{"td", in.TransferDescriptors},
		} {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%t\t%d/%d\n",
				in.Name, a.name, a.Base, a.End, a.Size, a.Align, a.Aligned, a.Available, a.Slots)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\ndisjoint: %t\n", r.Disjoint)
	for _, in := range r.Instances {
		addr := in.EndpointListAddr
		if addr == "" {
			addr = "unbound"
		}
		fmt.Fprintf(w, "%s: phase=%s endptlistaddr=%s\n", in.Name, in.Phase, addr)
	}
	for _, s := range r.Steals {
		fmt.Fprintf(w, "steal %s pass %d: qh=%d td=%d\n", s.Instance, s.Pass, s.QueueHeads, s.TransferDescriptors)
	}
	for _, wr := range r.Writes {
		fmt.Fprintf(w, "write %s %s <- %s\n", wr.Instance, wr.Register, wr.Value)
	}
	return nil
}
