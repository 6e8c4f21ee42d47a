// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package pathflag turns command-line arguments naming files into values decoded from those files.
//
// The package is built around two abstractions:
//
//   - Decoder[T]: materializes a T from a byte stream
//   - PathTo[T]: binds a filesystem path to the T decoded from the file at that path
//
// PathTo implements flag.Value and pflag.Value, so a flag which accepts a
// config file path can be declared with the type of the config itself.
//
// # Basic Usage
//
// Declare a flag whose value is the text of a file:
//
//	notes := pathflag.New(pathflag.Text)
//	flag.Var(notes, "notes", "path to a notes file")
//	flag.Parse()
//
//	fmt.Println(notes.Path(), *notes.Data())
//
// Format specific decoders, like the one in the toml subpackage, are layered
// on top of Text:
//
//	cfg := toml.Path[Config]()
//	cmd.Flags().Var(cfg, "config", "path to a TOML config file")
//
// # Error Handling
//
// Decoders report every failure as an IOError. Its Kind records whether the
// underlying stream failed (KindRead) or its contents could not be interpreted
// (KindInvalidData). Set wraps decoder failures in a *PathError which names the
// offending path.
package pathflag
