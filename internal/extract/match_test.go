package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindTerm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		term   string
		expect []int
	}{
		{name: "empty term", text: "go", term: "", expect: nil},
		{name: "empty text", text: "", term: "go", expect: nil},
		{name: "whole word", text: "go and rust", term: "go", expect: []int{0}},
		{name: "inside a word", text: "google mongo", term: "go", expect: nil},
		{name: "punctuation is a boundary", text: "(go), go.", term: "go", expect: []int{1, 6}},
		{name: "symbols inside the term", text: "c++ and c#", term: "c++", expect: []int{0}},
		{name: "trailing symbol term", text: "c#, .net", term: "c#", expect: []int{0}},
		{name: "multi word term", text: "applied machine learning models", term: "machine learning", expect: []int{8}},
		{name: "dotted term not followed by letters", text: "b.sc in physics, m.sc", term: "m.sc", expect: []int{17}},
		{name: "dotted term followed by letters", text: "m.science", term: "m.s", expect: nil},
		{name: "digits break words", text: "java8 java 8", term: "java", expect: []int{6}},
		{name: "non ascii neighbours", text: "éjava java", term: "java", expect: []int{7}},
		{name: "repeated occurrences", text: "sql, sql and nosql", term: "sql", expect: []int{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, FindTerm(tt.text, tt.term))
		})
	}
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, ContainsTerm("skilled in docker", "docker"))
	assert.False(t, ContainsTerm("dockerfile", "docker"))
}
