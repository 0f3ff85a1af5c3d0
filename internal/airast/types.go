// Package airast defines the abstract syntax tree for AIR source: the Type
// sum type, the 15 Block kinds, the UINode expression tree, and the
// database/navigation records nested inside @db/@nav blocks.
//
// The AST is produced once by the parser and is never mutated afterward —
// every downstream stage (validator, transpile context, generators) only
// reads it, mirroring the teacher's docmodel tree which is likewise built
// once by the markdown parser and consumed read-only by every later pass.
package airast

// ScalarKind enumerates the scalar leaves of Type.
type ScalarKind string

const (
	ScalarStr      ScalarKind = "str"
	ScalarInt      ScalarKind = "int"
	ScalarFloat    ScalarKind = "float"
	ScalarBool     ScalarKind = "bool"
	ScalarDate     ScalarKind = "date"
	ScalarDatetime ScalarKind = "datetime"
)

// TypeKind discriminates the Type sum type's variants.
type TypeKind int

const (
	TypeScalar TypeKind = iota
	TypeArray
	TypeOptional
	TypeObject
	TypeEnum
	TypeRef
)

// Type is a sum over scalar, array<T>, optional<T>, object<fields>,
// enum<values, default?>, and ref<entityName>, per spec.md §3.
//
// Only the fields relevant to Kind are populated; callers switch on Kind
// rather than testing fields for nilness.
type Type struct {
	Kind TypeKind

	Scalar       ScalarKind // TypeScalar
	ScalarDefault string    // TypeScalar, raw literal text; "" if absent

	Elem *Type // TypeArray, TypeOptional

	Fields []Field // TypeObject

	EnumValues  []string // TypeEnum
	EnumDefault string   // TypeEnum; "" if absent

	RefName string // TypeRef
}

// Field is a named, typed slot used by state blocks, db models, and route
// params.
type Field struct {
	Name    string
	Type    Type
	Default string // raw default literal text; "" if absent
}

// BlockKind enumerates the 15 kinds of Block.
type BlockKind string

const (
	BlockState   BlockKind = "state"
	BlockStyle   BlockKind = "style"
	BlockUI      BlockKind = "ui"
	BlockAPI     BlockKind = "api"
	BlockAuth    BlockKind = "auth"
	BlockNav     BlockKind = "nav"
	BlockPersist BlockKind = "persist"
	BlockHook    BlockKind = "hook"
	BlockDB      BlockKind = "db"
	BlockCron    BlockKind = "cron"
	BlockWebhook BlockKind = "webhook"
	BlockQueue   BlockKind = "queue"
	BlockEmail   BlockKind = "email"
	BlockEnv     BlockKind = "env"
	BlockDeploy  BlockKind = "deploy"
)

// Block is a sum over the 15 kinds above; only the field matching Kind is
// populated.
type Block struct {
	Kind BlockKind
	Line int // source line of the @block directive, for diagnostics

	State   *StateBlock
	Style   *StyleBlock
	UI      *UIBlock
	API     *APIBlock
	Auth    *AuthBlock
	Nav     *NavBlock
	Persist *PersistBlock
	Hook    *HookBlock
	DB      *DBBlock
	Cron    *ListBlock
	Webhook *ListBlock
	Queue   *ListBlock
	Email   *ListBlock
	Env     *ListBlock
	Deploy  *ListBlock
}

type StateBlock struct {
	Fields []Field
}

// StyleBlock holds raw declared style rules, order-preserved.
type StyleBlock struct {
	Rules []StyleRule
}

type StyleRule struct {
	Selector string
	Props    map[string]string
	// PropOrder preserves declaration order since map iteration is
	// unordered and generator output must be stable.
	PropOrder []string
}

type UIBlock struct {
	Children []UINode
}

// HTTPMethod or CRUD sentinel for Route.Method.
type RouteKind string

const (
	RouteHTTP RouteKind = "http"
	RouteCRUD RouteKind = "crud"
)

type Route struct {
	Kind    RouteKind
	Method  string // GET/POST/PUT/DELETE/PATCH for RouteHTTP; empty for RouteCRUD
	Path    string
	Params  []Field
	Handler string
	Line    int
}

type APIBlock struct {
	Routes []Route
}

type AuthBlock struct {
	Required bool
	Role     string // "" if unset
}

type NavRoute struct {
	Path     string
	Target   string
	Fallback string // "" if unset
}

type NavBlock struct {
	Routes []NavRoute
}

type PersistBlock struct {
	Keys   []string
	Method string // e.g. "localStorage", "sessionStorage"
}

type HookBlock struct {
	Names []string
}

type OnDelete string

const (
	OnDeleteCascade  OnDelete = "cascade"
	OnDeleteSetNull  OnDelete = "setNull"
	OnDeleteRestrict OnDelete = "restrict"
)

type DbField struct {
	Field
	Primary  bool
	Auto     bool
	Required bool
}

type Model struct {
	Name   string
	Fields []DbField
	Line   int
}

type Relation struct {
	From     string // "Model.field"
	To       string // "Model.field"
	OnDelete OnDelete
}

type Index struct {
	Model  string
	Fields []string
}

type DBBlock struct {
	Models    []Model
	Relations []Relation
	Indexes   []Index
}

// ListBlock covers cron/webhook/queue/email/env/deploy, each a plain
// ordered list of declared item strings (spec.md §3: "plain list of
// declared items").
type ListBlock struct {
	Items []string
}

// App is the root of the AST: a named application with an ordered list of
// blocks.
type App struct {
	Name   string
	Blocks []Block
}

// AirAST owns the parsed application.
type AirAST struct {
	App App
}

// BlocksOf returns all blocks of the given kind, preserving declaration order.
func (a *AirAST) BlocksOf(kind BlockKind) []Block {
	var out []Block
	for _, b := range a.App.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// FirstBlockOf returns the first block of the given kind and whether it
// was found. Most block kinds are expected to appear at most once.
func (a *AirAST) FirstBlockOf(kind BlockKind) (Block, bool) {
	for _, b := range a.App.Blocks {
		if b.Kind == kind {
			return b, true
		}
	}
	return Block{}, false
}
