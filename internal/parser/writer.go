package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/bibloom-cli/internal/utils"
)

// WriteRecords re-emits each record's raw text followed by a blank line, in
// slice order. Structured fields are never re-serialized.
func WriteRecords(w io.Writer, recs []*Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range recs {
		if _, err := bw.WriteString(r.Raw); err != nil {
			return fmt.Errorf("write entry %q: %w", r.Key, err)
		}
		if !strings.HasSuffix(r.Raw, "\n") {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes recs to path atomically.
func WriteFile(path string, recs []*Record) error {
	var buf bytes.Buffer
	if err := WriteRecords(&buf, recs); err != nil {
		return err
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}
