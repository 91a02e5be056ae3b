package generators

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

const maxEventSize = 4 * 1024 * 1024

var (
	dataPrefix = []byte("data:")
	doneData   = []byte("[DONE]")
)

// readEvents calls fn with the data of each server-sent event until the
// stream ends or sends [DONE]. Multi-line data is joined with newlines.
func readEvents(r io.Reader, fn func(data []byte) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var data []byte
	dispatch := func() (done bool, err error) {
		if data == nil {
			return false, nil
		}
		defer func() {
			data = nil
		}()
		if bytes.Equal(data, doneData) {
			return true, nil
		}
		return false, fn(data)
	}

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			done, err := dispatch()
			if err != nil || done {
				return err
			}
			continue
		}
		value, ok := bytes.CutPrefix(line, dataPrefix)
		if !ok {
			// comments, event names, ids
			continue
		}
		value = bytes.TrimPrefix(value, []byte(" "))
		if data != nil {
			data = append(data, '\n')
		}
		data = append(data, value...)
		if data == nil {
			data = []byte{}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	_, err := dispatch()
	return err
}
