// Package dsl parses the line-oriented graph language:
//
//	// comment
//	COMPONENT <name> FROM <type>
//	CONNECT <comp>.<port> TO <comp>.<port>
//	SET <comp>.<port> = <number>
//
// Keywords are case-sensitive, blank lines are ignored and `//` starts a
// comment that runs to the end of the line. Parsing only checks syntax; it
// produces a config.Graph that the builder package interprets.
package dsl
