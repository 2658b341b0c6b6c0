package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/commitgate/commitgate/commit"
)

// WriteVerdict writes a human-readable failure report: each failing
// message's identifier and header followed by the reason, then a
// summary line.
func WriteVerdict(w io.Writer, v *commit.Verdict) error {
	bw := bufio.NewWriter(w)
	for _, inv := range v.Invalid {
		fmt.Fprintf(bw, "%s: %q\n", inv.Identifier, inv.HeaderText)
		fmt.Fprintf(bw, "  %s\n", inv.Reason)
	}
	if len(v.Invalid) > 0 {
		fmt.Fprintf(bw, "\n%d of %d messages failed validation\n", len(v.Invalid), v.Total)
	}
	return bw.Flush()
}

// WriteVerdictJSON writes the verdict in its wire shape. The field
// names are a compatibility contract; see commit.Verdict.
func WriteVerdictJSON(w io.Writer, v *commit.Verdict) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
