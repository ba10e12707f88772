package ir

// SchemaVersion is the current §6.1 wire-format version, embedded in every
// serialized Module so downstream readers can detect a shape they don't
// understand instead of guessing.
const SchemaVersion = "1.0"

// SourceInfo records where a Module's content came from, for diagnostics and
// for golden-snapshot provenance.
type SourceInfo struct {
	Path string `json:"path,omitempty"`
	Hash string `json:"hash,omitempty"`
}

// ModuleHeader carries a Module's top-level facts: its own node id, the
// top-level statement ids in source order, free-form metadata (including
// the MetaPerf block the Compile Facade attaches, SPEC_FULL §4.9), source
// provenance, any preserved directives (e.g. "use strict"), and toolchain
// identification.
type ModuleHeader struct {
	ID         string                 `json:"id"`
	Body       []string               `json:"body"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Source     SourceInfo             `json:"source,omitempty"`
	Directives []string               `json:"directives,omitempty"`
	Toolchain  map[string]interface{} `json:"toolchain,omitempty"`
}

// Block is one node of a function's control-flow graph: a straight-line run
// of statement ids with a role tag (entry/exit/body).
type Block struct {
	ID         string   `json:"id"`
	BlockKind  string   `json:"blockKind"`
	Statements []string `json:"statements"`
}

// CFG is one function's control-flow graph, built by the Lowerer alongside
// its IR body (§4.4). Successors/Predecessors are adjacency lists keyed by
// block id; every Block.ID must appear as a key in both maps, even if its
// list is empty (§3.3 invariant 5).
type CFG struct {
	ID           string              `json:"id"`
	Blocks       []*Block            `json:"blocks"`
	Successors   map[string][]string `json:"successors"`
	Predecessors map[string][]string `json:"predecessors"`
}

// Module is the complete output of the Lowerer (before or after Extension
// Registry transforms run): a flat, content-addressed node table plus a
// header and one CFG per function (§3.2). Nodes is the content-addressing
// table referenced everywhere in this package: a child "reference" in any
// Node.Children() result must be a key in Nodes for Module to be valid
// (§3.3 invariant 1).
type Module struct {
	SchemaVersion     string           `json:"schemaVersion"`
	Header            ModuleHeader     `json:"module"`
	Nodes             map[string]Node  `json:"nodes"`
	ControlFlowGraphs map[string]*CFG  `json:"controlFlowGraphs,omitempty"`
}

// NewModule returns an empty Module stamped with the current schema version.
func NewModule() *Module {
	return &Module{
		SchemaVersion:     SchemaVersion,
		Nodes:             map[string]Node{},
		ControlFlowGraphs: map[string]*CFG{},
	}
}

// Get looks up a node by id, reporting whether it was found. Every
// production code path that follows a Children() reference should check ok
// rather than indexing Nodes directly, since a reference into a node the
// Module doesn't contain is exactly the BrokenReference failure the
// Validator exists to catch (§4.6, §7).
func (m *Module) Get(id string) (Node, bool) {
	n, ok := m.Nodes[id]
	return n, ok
}
