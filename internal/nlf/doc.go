// Package nlf reads and writes NLF language files and converts them to and
// from JSON.
//
// An NLF file is a list of lines:
//
//	# comment (also ; comment)
//	@language=English
//	@codepage=1252
//
//	Welcome=Welcome to the $(^Name) Setup Wizard
//	Finish=Setup has finished.\nClick Finish to close.
//
// Keys start with a letter or underscore followed by letters, digits or
// underscores. Everything after the first '=' is the value; unescaped spaces
// and tabs around it are dropped. Values understand the escapes \n, \r, \t,
// \\, \= and "\ " (a space that survives trimming). Lines whose key starts
// with @ carry language metadata and are left out of JSON unless requested.
//
// When a key appears more than once the DuplicatePolicy decides the value;
// the key keeps the position where it first appeared.
//
// Converting to JSON drops comments and blank lines, so a round trip through
// JSON returns only the key-value lines.
package nlf
