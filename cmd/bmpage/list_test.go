package main

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/bmpage/internal/model"
)

func TestPrintTree(t *testing.T) {
	f1 := "f1"
	coll := model.NewCollection()
	coll.Append(model.Entry{ID: "f1", Title: "Dev", Type: model.TypeFolder, Position: 0})
	coll.Append(model.Entry{ID: "b1", Title: "Go", URL: "https://go.dev", Type: model.TypeBookmark, Parent: &f1})
	coll.Append(model.Entry{ID: "b2", Title: "News", URL: "https://news.example", Type: model.TypeBookmark, Position: 1})

	var buf bytes.Buffer
	printTree(&buf, coll, nil, 0)

	assert.Equal(t, buf.String(), "Dev/\n  Go  https://go.dev\nNews  https://news.example\n")
}
