// Package csproj reads and edits build settings in MSBuild project files.
//
// An [Editor] targets the PropertyGroup elements selected by its [Selector]:
// unconditional groups for [SelectAll], or groups whose Condition attribute
// is exactly the Debug|AnyCPU or Release|AnyCPU test that Visual Studio
// generates. Reads use the first selected group; writes apply to every
// selected group.
package csproj
