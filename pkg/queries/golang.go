package queries

// Go is the combined extraction query for the Go grammar. Go has no class
// keyword, so a named struct or interface type stands in for class-like;
// method receivers are not exposed through this query's captures at all —
// the adapter re-queries a matched method_declaration node a second time
// with GoReceiver to recover the receiver type (see pkg/adapter/golang).
const Go = `
; ============================================================================
; Imports
; ============================================================================

(import_declaration) @module.import

; ============================================================================
; Named struct / interface types (class-like)
; ============================================================================

(type_declaration
  (type_spec
    name: (type_identifier) @class.name
    type: (struct_type)
  )
) @class.definition

(type_declaration
  (type_spec
    name: (type_identifier) @class.name
    type: (interface_type)
  )
) @class.definition

; Plain type aliases (neither struct nor interface) render as alias-like.
(type_declaration
  (type_spec
    name: (type_identifier) @type.name
  )
) @type.definition

; ============================================================================
; Functions and methods
; ============================================================================

(function_declaration
  name: (identifier) @function.name
) @function.definition

(method_declaration
  name: (field_identifier) @function.name
) @function.definition

; ============================================================================
; Top-level vars/consts and struct fields
; ============================================================================

(const_spec
  name: (identifier) @variable.name
) @variable.definition

(var_spec
  name: (identifier) @variable.name
) @variable.definition

(field_declaration
  name: (field_identifier) @variable.name
) @variable.definition
`

// GoReceiver is re-run against a single method_declaration node already
// matched by Go, solely to recover the receiver's type identifier — the
// combined query above cannot carry that information through the same
// function.definition/function.name capture pair used for plain functions.
const GoReceiver = `
(method_declaration
  receiver: (parameter_list
    (parameter_declaration
      type: [
        (type_identifier) @receiver.type
        (pointer_type (type_identifier) @receiver.type)
      ]
    )
  )
) @receiver.definition
`
