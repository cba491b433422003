package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/erdlayout/pkg/schema"
)

func TestDetectClusters(t *testing.T) {
	tests := []struct {
		name   string
		schema schema.Schema
		want   [][]string
	}{
		{
			name: "SortedBySize",
			schema: schema.Schema{
				Tables: []schema.Table{tbl("a", 1), tbl("b", 1), tbl("c", 1), tbl("d", 1), tbl("e", 1), tbl("f", 1)},
				Relationships: []schema.Relationship{
					rel("a", "b"), rel("d", "e"), rel("e", "f"),
				},
			},
			want: [][]string{{"d", "e", "f"}, {"a", "b"}, {"c"}},
		},
		{
			name: "DepthFirstPreOrder",
			schema: schema.Schema{
				Tables: []schema.Table{tbl("a", 1), tbl("b", 1), tbl("c", 1), tbl("d", 1)},
				Relationships: []schema.Relationship{
					rel("a", "b"), rel("a", "c"), rel("b", "d"),
				},
			},
			want: [][]string{{"a", "b", "d", "c"}},
		},
		{
			name: "UndirectedEdges",
			schema: schema.Schema{
				Tables:        []schema.Table{tbl("a", 1), tbl("b", 1)},
				Relationships: []schema.Relationship{rel("b", "a")},
			},
			want: [][]string{{"a", "b"}},
		},
		{
			name: "DanglingIgnored",
			schema: schema.Schema{
				Tables:        []schema.Table{tbl("a", 1), tbl("b", 1)},
				Relationships: []schema.Relationship{rel("a", "ghost"), rel("ghost", "b")},
			},
			want: [][]string{{"a"}, {"b"}},
		},
		{
			name: "SelfLoopIgnored",
			schema: schema.Schema{
				Tables:        []schema.Table{tbl("a", 1)},
				Relationships: []schema.Relationship{rel("a", "a")},
			},
			want: [][]string{{"a"}},
		},
		{
			name: "DuplicateNamesResolveToFirst",
			schema: schema.Schema{
				Tables:        []schema.Table{tbl("a", 1), tbl("a", 2), tbl("b", 1)},
				Relationships: []schema.Relationship{rel("a", "b")},
			},
			want: [][]string{{"a", "b"}, {"a"}},
		},
		{
			name: "SingletonsKeepDeclarationOrder",
			schema: schema.Schema{
				Tables: []schema.Table{tbl("z", 1), tbl("y", 1), tbl("x", 1)},
			},
			want: [][]string{{"z"}, {"y"}, {"x"}},
		},
		{
			name: "RepeatedRelationship",
			schema: schema.Schema{
				Tables:        []schema.Table{tbl("a", 1), tbl("b", 1)},
				Relationships: []schema.Relationship{rel("a", "b"), rel("b", "a"), rel("a", "b")},
			},
			want: [][]string{{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(tt.schema)
			got := clusterNames(a, detectClusters(a))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("clusters = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdjacencyDeduplicates(t *testing.T) {
	s := schema.Schema{
		Tables:        []schema.Table{tbl("a", 1), tbl("b", 1), tbl("c", 1)},
		Relationships: []schema.Relationship{rel("a", "b"), rel("b", "a"), rel("a", "c")},
	}
	adj := adjacency(newArena(s))

	if want := []int{1, 2}; !reflect.DeepEqual(adj[0], want) {
		t.Errorf("adj[a] = %v, want %v", adj[0], want)
	}
	if want := []int{0}; !reflect.DeepEqual(adj[1], want) {
		t.Errorf("adj[b] = %v, want %v", adj[1], want)
	}
}

func TestExportClusters(t *testing.T) {
	s := schema.Schema{
		Tables:        []schema.Table{tbl("a", 1), tbl("b", 1), tbl("c", 1)},
		Relationships: []schema.Relationship{rel("c", "a")},
	}
	a := newArena(s)
	got := exportClusters(a, detectClusters(a))

	want := []Cluster{
		{Tables: []string{"a", "c"}, Size: 2},
		{Tables: []string{"b"}, Size: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("exportClusters = %+v, want %+v", got, want)
	}
}
