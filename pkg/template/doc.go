// Package template substitutes {variable} placeholders with values from a
// context map.
//
// The grammar is deliberately small: a placeholder is an identifier made of
// ASCII letters, digits and underscores wrapped in single braces.
//
//	text := template.Render("Hello {name}, your order {order_id} shipped", map[string]any{
//	    "name":     "Maria",
//	    "order_id": 42,
//	})
//	// Hello Maria, your order 42 shipped
//
// Placeholders whose key is missing (or maps to nil) are left untouched, so a
// reviewer or downstream agent can see that data was missing. Substituted
// values are never scanned again, and there is no escape syntax: a literal
// "{word}" that matches a context key is always replaced.
package template
