// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides the CUE parsing steps shared by the reactor
// manifest loader and the configuration file loader:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode into a Go struct
//
// It also resolves dotted and indexed lookup keys such as
// "maven-compiler-plugin.release" or "executions[1].goal" against a CUE value.
//
// # Usage
//
//	//go:embed reactor_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[manifestV2](
//	    schema, data, "#ReactorV2",
//	    cueutil.WithFilename("reactor.cue"),
//	)
package cueutil
