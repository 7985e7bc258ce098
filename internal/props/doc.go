// SPDX-License-Identifier: MPL-2.0

// Package props holds the flat property map produced by a conversion run and
// the override tiers consulted while building it.
//
// Override precedence (highest first):
//
//  1. User properties (-D flags, then a .properties file)
//  2. Environment properties (SONARQUBE_SCANNER_PARAMS JSON, then dotenv files)
//  3. Module-local declared properties
//
// A tier "defines" a key when it holds a non-blank value for it. The first
// defining tier wins outright; lower tiers are never merged in.
package props
