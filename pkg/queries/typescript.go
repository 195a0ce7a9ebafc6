package queries

// TypeScript is the single compiled-query source for the TypeScript (and
// TSX) grammar. Every capture is named "<kind>.definition" with a companion
// "<kind>.name", per the engine's capture convention, with two exceptions:
// "module.import" is collected separately into a file's import list rather
// than dispatched through the skeleton-kind table, and construct signatures
// have no name capture (the adapter names them "new").
const TypeScript = `
; ============================================================================
; Imports
; ============================================================================

(import_statement) @module.import

; ============================================================================
; Classes, interfaces, enums, namespaces
; ============================================================================

(class_declaration
  name: (type_identifier) @class.name
) @class.definition

(abstract_class_declaration
  name: (type_identifier) @class.name
) @class.definition

(interface_declaration
  name: (type_identifier) @interface.name
) @interface.definition

(enum_declaration
  name: (identifier) @enum.name
) @enum.definition

(internal_module
  name: (identifier) @namespace.name
) @namespace.definition

(internal_module
  name: (nested_identifier) @namespace.name
) @namespace.definition

(ambient_declaration
  (internal_module
    name: (identifier) @namespace.name
  )
) @namespace.definition

; ============================================================================
; Functions, methods, constructors, accessors, construct signatures
; ============================================================================

(function_declaration
  name: (identifier) @function.name
) @function.definition

(generator_function_declaration
  name: (identifier) @function.name
) @function.definition

(ambient_declaration
  (function_signature
    name: (identifier) @function.name
  ) @function.definition
)

(function_signature
  name: (identifier) @function.name
) @function.definition

(method_definition
  name: (property_identifier) @method.name
) @method.definition

(method_signature
  name: (property_identifier) @method.name
) @method.definition

(abstract_method_signature
  name: (property_identifier) @method.name
) @method.definition

(construct_signature) @method.definition

; ============================================================================
; Variables, arrow functions, fields, type aliases
; ============================================================================

(variable_declarator
  name: (identifier) @function.name
  value: (function_expression)
) @function.definition

(variable_declarator
  name: (identifier) @arrow.name
  value: (arrow_function)
) @arrow.definition

(lexical_declaration
  (variable_declarator
    name: (identifier) @variable.name
  ) @variable.definition
)

(public_field_definition
  name: (property_identifier) @variable.name
) @variable.definition

(property_signature
  name: (property_identifier) @variable.name
) @variable.definition

(enum_body
  (property_identifier) @variable.name @variable.definition
)

(enum_assignment
  name: (property_identifier) @variable.name
) @variable.definition

(type_alias_declaration
  name: (type_identifier) @type.name
) @type.definition
`
