// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package dump

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/golang/snappy"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"

	"github.com/ikmak/bsonread/bson"
	"github.com/ikmak/bsonread/options"
)

func docA() []byte {
	return bsoncore.BuildDocumentFromElements(nil, bsoncore.AppendStringElement(nil, "a", "x"))
}

func docN(n int32) []byte {
	return bsoncore.BuildDocumentFromElements(nil, bsoncore.AppendInt32Element(nil, "n", n))
}

func concat(docs ...[]byte) []byte {
	return bytes.Join(docs, nil)
}

func bytesInput(name string, b []byte) Input {
	return Input{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(b)), nil },
	}
}

func TestSplit(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		docs, err := Split(bytes.NewReader(nil))
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
	t.Run("concatenated", func(t *testing.T) {
		docs, err := Split(bytes.NewReader(concat(docA(), docN(1), docN(2))))
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, docA(), docs[0])
		assert.Equal(t, docN(2), docs[2])
	})
	t.Run("errors", func(t *testing.T) {
		testCases := []struct {
			name  string
			input []byte
			want  error
		}{
			{"partial length", []byte{0x05, 0x00}, io.ErrUnexpectedEOF},
			{"partial document", docA()[:6], io.ErrUnexpectedEOF},
			{"header only", []byte{0x0A, 0x00, 0x00, 0x00}, io.ErrUnexpectedEOF},
			{"too small", []byte{0x04, 0x00, 0x00, 0x00}, ErrDocumentSize},
			{"negative", []byte{0xFF, 0xFF, 0xFF, 0xFF}, ErrDocumentSize},
			{"too large", []byte{0x01, 0x00, 0x00, 0x01}, ErrDocumentSize},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := Split(bytes.NewReader(concat(docA(), tc.input)))
				assert.ErrorIs(t, err, tc.want)
				assert.Contains(t, err.Error(), "document 1")
			})
		}
	})
}

func TestParseFormat(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatPretty, FormatGo} {
		got, err := ParseFormat(strings.ToUpper(f.String()))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	got, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	_, err = ParseFormat("yaml")
	assert.EqualError(t, err, `unknown format "yaml"`)
}

func TestRender(t *testing.T) {
	val, err := bson.Decode(docA())
	require.NoError(t, err)

	testCases := []struct {
		name   string
		format Format
		color  bool
		want   string
	}{
		{"json", FormatJSON, false, "{\"a\":\"x\"}\n"},
		{"pretty", FormatPretty, false, "{\n  \"a\": \"x\"\n}\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := render(val, tc.format, tc.color)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(b))
		})
	}

	t.Run("go", func(t *testing.T) {
		b, err := render(val, FormatGo, false)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "bson.D{"), "got %s", b)
		assert.Contains(t, string(b), `"a"`)
		assert.Contains(t, string(b), `"x"`)
	})
	t.Run("color", func(t *testing.T) {
		b, err := render(val, FormatPretty, true)
		require.NoError(t, err)
		assert.Contains(t, string(b), "\x1b[")
	})
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, s)

	s, err = Summarize([]float64{50, 10, 30, 20, 40})
	require.NoError(t, err)
	assert.Equal(t, Summary{Count: 5, Total: 150, Min: 10, Max: 50, Mean: 30, Median: 30, P90: 45}, s)
	assert.Equal(t, "documents=5 bytes=150 min=10 max=50 mean=30.0 median=30.0 p90=45.0", s.String())
}

func TestDumper(t *testing.T) {
	t.Run("preserves input order", func(t *testing.T) {
		var inputs []Input
		var want strings.Builder
		for i := int32(0); i < 20; i++ {
			inputs = append(inputs, bytesInput("f", concat(docN(i), docN(-i))))
			want.WriteString("{\"n\":" + itoa(i) + "}\n{\"n\":" + itoa(-i) + "}\n")
		}

		var out bytes.Buffer
		d := &Dumper{Jobs: 4}
		s, err := d.Run(context.Background(), &out, inputs)
		require.NoError(t, err)
		assert.Equal(t, want.String(), out.String())
		assert.Equal(t, 40, s.Count)
	})
	t.Run("snappy", func(t *testing.T) {
		var out bytes.Buffer
		d := &Dumper{Snappy: true}
		_, err := d.Run(context.Background(), &out, []Input{
			bytesInput("a.bson.sz", snappy.Encode(nil, concat(docA(), docA()))),
		})
		require.NoError(t, err)
		assert.Equal(t, "{\"a\":\"x\"}\n{\"a\":\"x\"}\n", out.String())
	})
	t.Run("snappy corrupt", func(t *testing.T) {
		d := &Dumper{Snappy: true}
		_, err := d.Run(context.Background(), io.Discard, []Input{bytesInput("bad", []byte{0xFF, 0xFF})})
		assert.ErrorIs(t, err, snappy.ErrCorrupt)
	})
	t.Run("decode error", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		bad := docA()
		bad[4] = 0xAA

		var out bytes.Buffer
		d := &Dumper{Log: logger}
		_, err := d.Run(context.Background(), &out, []Input{
			bytesInput("good", docA()),
			bytesInput("bad", concat(docA(), bad)),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, bson.ErrUnsupportedType))
		assert.Contains(t, err.Error(), "bad: document 1")
		assert.Equal(t, "{\"a\":\"x\"}\n", out.String(), "output before the failing input is kept")

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "bad", entry.Data["file"])
		assert.Equal(t, 1, entry.Data["document"])
	})
	t.Run("strict decoder", func(t *testing.T) {
		dec, err := bson.NewDecoder(options.Decode().SetStrictLength(true))
		require.NoError(t, err)

		doc := docA()
		doc[0]++
		doc = append(doc, 0x00)

		d := &Dumper{Decoder: dec}
		_, err = d.Run(context.Background(), io.Discard, []Input{bytesInput("f", doc)})
		assert.True(t, errors.Is(err, bson.ErrLengthMismatch), "got %v", err)
	})
	t.Run("default decoder bounds nesting", func(t *testing.T) {
		doc := bsoncore.BuildDocumentFromElements(nil)
		for i := 1; i <= bson.DefaultMaxDepth; i++ {
			doc = bsoncore.BuildDocumentFromElements(nil, bsoncore.AppendDocumentElement(nil, "d", doc))
		}

		d := &Dumper{}
		_, err := d.Run(context.Background(), io.Discard, []Input{bytesInput("deep", doc)})
		assert.True(t, errors.Is(err, bson.ErrMaxDepthExceeded), "got %v", err)
		assert.Contains(t, err.Error(), "deep: document 0")
	})
	t.Run("open error", func(t *testing.T) {
		want := errors.New("no such file")
		d := &Dumper{}
		_, err := d.Run(context.Background(), io.Discard, []Input{{
			Name: "missing",
			Open: func() (io.ReadCloser, error) { return nil, want },
		}})
		assert.ErrorIs(t, err, want)
		assert.Contains(t, err.Error(), "cannot open missing")
	})
	t.Run("logs file fields", func(t *testing.T) {
		logger, hook := logtest.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)

		doc := docA()
		d := &Dumper{Log: logger}
		_, err := d.Run(context.Background(), io.Discard, []Input{bytesInput("one", doc)})
		require.NoError(t, err)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, "decoded file", entry.Message)
		assert.Equal(t, logrus.Fields{"file": "one", "documents": 1, "bytes": len(doc)}, entry.Data)
	})
}

func itoa(i int32) string {
	b, _ := bson.Int32(i).MarshalJSON()
	return string(b)
}
