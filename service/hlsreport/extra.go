package hlsreport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/ReconfigureIO/hlsflow/models"
)

// Standard library behaviour, except that numbers keep their text so
// integers and floats can be told apart.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ExtraInfoError is returned when a record's epoch has no extra info entry.
type ExtraInfoError struct {
	Epoch int64
}

func (e ExtraInfoError) Error() string {
	return fmt.Sprintf("no extra info for epoch %d", e.Epoch)
}

// ExtraInfo holds additional fields per training epoch.
type ExtraInfo map[int64]models.Record

type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// ReadExtraInfo decodes a JSON object whose keys start with an "epoch=N"
// token, like "epoch=12-val_acc=0.93", and whose values are objects of
// fields. Keys are read in file order; when two share an epoch the later
// one wins.
func ReadExtraInfo(r io.Reader) (ExtraInfo, error) {
	info := ExtraInfo{}
	var keyErr error

	iter := jsoniter.Parse(json, r, 4096)
	iter.ReadMapCB(func(it *jsoniter.Iterator, id string) bool {
		epoch, err := epochFromID(id)
		if err != nil {
			keyErr = err
			it.ReportError("ReadExtraInfo", err.Error())
			return false
		}
		var fields map[string]interface{}
		it.ReadVal(&fields)
		if it.Error != nil {
			return false
		}
		rec := models.Record{}
		for k, v := range fields {
			rec[k] = normalize(v)
		}
		info[epoch] = rec
		return true
	})
	if keyErr != nil {
		return nil, keyErr
	}
	if iter.Error != nil {
		return nil, iter.Error
	}
	return info, nil
}

func epochFromID(id string) (int64, error) {
	head := strings.SplitN(id, "-", 2)[0]
	pos := strings.Index(head, "=")
	if pos == -1 {
		return 0, fmt.Errorf("extra info key %q does not start with epoch=N", id)
	}
	epoch, err := strconv.ParseInt(head[pos+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("extra info key %q: %w", id, err)
	}
	return epoch, nil
}

func normalize(v interface{}) interface{} {
	switch n := v.(type) {
	case number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		f, _ := n.Float64()
		return f
	case string, bool, nil:
		return n
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// Apply adds the extra fields of each record's epoch. Fields a record
// already has are kept.
func (info ExtraInfo) Apply(records []models.Record) error {
	for _, r := range records {
		epoch, ok := recordEpoch(r)
		if !ok {
			return fmt.Errorf("record has no integer epoch field: %v", r.Keys())
		}
		fields, ok := info[epoch]
		if !ok {
			return ExtraInfoError{Epoch: epoch}
		}
		r.Merge(fields)
	}
	return nil
}

func recordEpoch(r models.Record) (int64, bool) {
	f, ok := models.Numeric(r["epoch"])
	if !ok || f != float64(int64(f)) {
		return 0, false
	}
	return int64(f), true
}
