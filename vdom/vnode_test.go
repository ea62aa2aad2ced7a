package vdom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewVNode_MovesOnClick(t *testing.T) {
	clicked := 0
	n := NewVNode("button", map[string]any{"id": "b", "onClick": func() { clicked++ }}, nil, "Go")

	assert.NotContains(t, n.Attributes, "onClick")
	assert.Equal(t, "b", n.Attr("id"))
	n.OnClick()
	assert.Equal(t, 1, clicked)
}

func TestAnchor(t *testing.T) {
	a := Anchor("/about", "About", map[string]any{"class": "nav"}, nil)
	assert.Equal(t, "a", a.Tag)
	assert.Equal(t, "/about", a.Attr("href"))
	assert.Equal(t, "nav", a.Attr("class"))
	assert.Equal(t, "About", a.Content)
	assert.Nil(t, a.OnClick)
	assert.Empty(t, a.Attr("missing"))

	d := Div(nil, Paragraph("x", nil), a)
	assert.Len(t, d.Children, 2)
}
