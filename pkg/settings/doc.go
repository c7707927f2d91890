// Package settings provides declarative tables of project settings.
//
// A [Table] is an ordered list of element names and text values that the
// property editor writes into, or removes from, matching PropertyGroup
// elements as a unit. The Code Contracts table is built in; other tables can
// be loaded from YAML files of the same shape:
//
//	settings:
//	  - name: CodeContractsEnableRuntimeChecking
//	    value: "True"
package settings
