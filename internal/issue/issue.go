// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	ManifestNotFoundId Id = iota + 1
	ManifestInvalidId
	UnsupportedSchemaId
	RootModuleMissingId
	OrphanModuleId
	DuplicatePropertyId
	MissingOverridePathId
	AmbiguousCommonRootId
	ConfigLoadFailedId
	OverridesInvalidId
	OutputWriteFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Renderer interface {
		Render(in string, stylePath string) (string, error)
	}

	Issue struct {
		id       Id          // ID used to lookup the issue
		slug     string      // name accepted by `scanprops explain`
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

// String returns the issue slug, or "" for unknown ids.
func (id Id) String() string {
	if i := Get(id); i != nil {
		return i.slug
	}
	return ""
}

// ParseId resolves a slug (or its numeric form) to an Id.
func ParseId(s string) (Id, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		_, ok := issues[Id(n)]
		return Id(n), ok
	}
	for _, i := range issues {
		if i.slug == s {
			return i.id, true
		}
	}
	return 0, false
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) Slug() string {
	return i.slug
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	var extra strings.Builder
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extra.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			extra.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(string(i.mdMsg)+extra.String(), stylePath)
}

var (
	render = glamour.Render

	manifestNotFoundIssue = &Issue{
		id:   ManifestNotFoundId,
		slug: "manifest-not-found",
		mdMsg: `
# No reactor manifest found!

scanprops reads the module list from a ` + "`reactor.cue`" + ` file.

## Things you can try:
- Pass the manifest (or its directory) explicitly:
~~~
$ scanprops flatten path/to/reactor.cue
~~~
- Run the command from the directory holding ` + "`reactor.cue`",
	}

	manifestInvalidIssue = &Issue{
		id:   ManifestInvalidId,
		slug: "manifest-invalid",
		mdMsg: `
# The reactor manifest is invalid!

The manifest failed CUE validation or declares duplicate module keys.

## Things you can try:
- Check the reported CUE path and fix the value there
- Make sure every module has a unique ` + "`group:artifact`" + ` pair
- Make sure ` + "`root`" + ` names one of the declared modules`,
	}

	unsupportedSchemaIssue = &Issue{
		id:   UnsupportedSchemaId,
		slug: "unsupported-schema",
		mdMsg: `
# Unsupported manifest schema version!

Only ` + "`schema_version`" + ` 1.x and 2.x manifests can be read.

## Things you can try:
- Set ` + "`schema_version: \"2.0\"`" + ` and use the v2 module layout
- Remove the field to read the manifest as 1.0`,
	}

	rootModuleMissingIssue = &Issue{
		id:   RootModuleMissingId,
		slug: "root-module-missing",
		mdMsg: `
# The root module cannot be analyzed!

The designated root module is not part of the module set, usually because it
sets ` + "`sonar.skip=true`" + `.

## Things you can try:
- Remove ` + "`sonar.skip`" + ` from the root module
- Point ` + "`root`" + ` at the module enclosing all others`,
	}

	orphanModuleIssue = &Issue{
		id:   OrphanModuleId,
		slug: "orphan-module",
		mdMsg: `
# Unable to determine the structure of the project!

A module was never reached while walking the declared sub-modules from the root.
Every module must be referenced, directly or transitively, by the root.

## Things you can try:
- Add the orphan's directory or descriptor to its parent's ` + "`modules`" + ` list
- Check that relative sub-module paths resolve to the orphan's basedir or descriptor
- Remove modules that do not belong to this build from the manifest`,
	}

	duplicatePropertyIssue = &Issue{
		id:   DuplicatePropertyId,
		slug: "duplicate-property",
		mdMsg: `
# A property was written twice!

Two modules produced the same prefixed property key. This happens when a
module-local property collides with a computed one.

## Things you can try:
- Remove ` + "`sonar.sources`" + `/` + "`sonar.tests`" + ` from module properties that are not meant as overrides
- Check for modules reachable through two parents`,
	}

	missingOverridePathIssue = &Issue{
		id:   MissingOverridePathId,
		slug: "missing-override-path",
		mdMsg: `
# An overridden source path does not exist!

When ` + "`sonar.sources`" + ` or ` + "`sonar.tests`" + ` is overridden for a non-aggregator
module, every listed path must exist. Relative paths resolve against the module's
base directory.

## Things you can try:
- Fix the path in the -D flag, properties file, SONARQUBE_SCANNER_PARAMS or module properties
- Create the directory if it is generated by an earlier build step
- Quote paths that contain commas: ` + "`\"src/a,b\",src/c`",
	}

	ambiguousCommonRootIssue = &Issue{
		id:   AmbiguousCommonRootId,
		slug: "ambiguous-common-root",
		mdMsg: `
# Modules share no common base directory!

Two module base directories have no common parent, so no project base directory
can be inferred.

## Things you can try:
- Keep all modules of one analysis below a single directory
- Analyze each module tree separately`,
	}

	configLoadFailedIssue = &Issue{
		id:   ConfigLoadFailedId,
		slug: "config-load-failed",
		mdMsg: `
# Failed to load the configuration!

## Things you can try:
- Show where the configuration is read from:
~~~
$ scanprops config path
~~~
- Recreate a default configuration:
~~~
$ scanprops config init
~~~`,
	}

	overridesInvalidIssue = &Issue{
		id:   OverridesInvalidId,
		slug: "overrides-invalid",
		mdMsg: `
# Override properties could not be read!

## Things you can try:
- Pass -D flags as ` + "`key=value`" + `
- Make SONARQUBE_SCANNER_PARAMS a JSON object of string values
- Check the --properties and --env-file paths`,
	}

	outputWriteFailedIssue = &Issue{
		id:   OutputWriteFailedId,
		slug: "output-write-failed",
		mdMsg: `
# Failed to write the properties!

## Things you can try:
- Check that the --output directory exists and is writable
- Pick one of the supported formats: properties, json, toml`,
	}

	issues = map[Id]*Issue{
		manifestNotFoundIssue.Id():    manifestNotFoundIssue,
		manifestInvalidIssue.Id():     manifestInvalidIssue,
		unsupportedSchemaIssue.Id():   unsupportedSchemaIssue,
		rootModuleMissingIssue.Id():   rootModuleMissingIssue,
		orphanModuleIssue.Id():        orphanModuleIssue,
		duplicatePropertyIssue.Id():   duplicatePropertyIssue,
		missingOverridePathIssue.Id(): missingOverridePathIssue,
		ambiguousCommonRootIssue.Id(): ambiguousCommonRootIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		overridesInvalidIssue.Id():    overridesInvalidIssue,
		outputWriteFailedIssue.Id():   outputWriteFailedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
