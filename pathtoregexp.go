// Package pathtoregexp turns route patterns such as "/users/:id" into path
// generators and matchers.
//
// A pattern is made of literal text and parameters:
//
//	/users/:id          named parameter, matches up to the next delimiter
//	/files/:path*       zero or more segments, each prefixed with "/"
//	/icons/:name(\w+)   custom pattern
//	/user{-:role}?      braced group with an arbitrary prefix, optional
//	/\:literal          escaped character
//
// Parameters accept the modifiers "?" (optional), "*" (zero or more) and
// "+" (one or more). Custom patterns use the JavaScript regular expression
// syntax.
//
// Compile returns a PathFunc producing paths from values:
//
//	toPath, _ := pathtoregexp.Compile("/user/:id", nil)
//	toPath(map[string]any{"id": 42}) // "/user/42"
//
// Match returns a MatchFunc extracting values from paths:
//
//	match, _ := pathtoregexp.Match("/user/:id", nil)
//	match("/user/42") // &MatchResult{Path: "/user/42", Params: map[string]any{"id": "42"}}
//
// Compiled functions are immutable and safe for concurrent use; callers are
// expected to compile a pattern once and reuse the result.
package pathtoregexp
