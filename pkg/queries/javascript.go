package queries

// JavaScript mirrors TypeScript's query shape with everything type-only
// removed: no interface/enum/namespace/type-alias captures, no construct
// signatures. Object-literal methods and arrow properties (the `pair`
// node shape) are out of scope: neither end-to-end scenario this adapter
// targets (S8) needs them, and capturing them would need a third
// BuildFunctionSkeleton wrapper shape beyond variable_declarator's.
const JavaScript = `
; ============================================================================
; Imports
; ============================================================================

(import_statement) @module.import

; ============================================================================
; Classes
; ============================================================================

(class_declaration
  name: (identifier) @class.name
) @class.definition

; ============================================================================
; Functions, methods
; ============================================================================

(function_declaration
  name: (identifier) @function.name
) @function.definition

(generator_function_declaration
  name: (identifier) @function.name
) @function.definition

(variable_declarator
  name: (identifier) @function.name
  value: (function_expression)
) @function.definition

(method_definition
  name: (property_identifier) @method.name
) @method.definition

; ============================================================================
; Variables, arrow functions, fields
; ============================================================================

(variable_declarator
  name: (identifier) @arrow.name
  value: (arrow_function)
) @arrow.definition

(lexical_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(variable_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(field_definition
  property: (property_identifier) @variable.name
) @variable.definition
`
