// Package app wires trail loading, configuration, the interpreter and the
// world together behind the commands of the anttrail tool.
package app
