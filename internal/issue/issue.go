// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

// Id identifies a known failure with a Markdown troubleshooting guide.
type Id int

const (
	TargetExistsId Id = iota + 1
	InvalidAppNameId
	EmptySelectionId
	FetchFailedId
	GitNotFoundId
	ConfigLoadFailedId
	ProvisioningFailedId
	PartialProjectId
	InstallFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
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

// Render renders the guide with the given glamour style ("dark", "light",
// "notty" or a JSON style path).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	targetExistsIssue = &Issue{
		id: TargetExistsId,
		mdMsg: `
# The project directory already exists

Projects are always created in a new directory, so an existing one is never
overwritten.

## Things you can try:
- Pick another app name:
~~~
$ create-hedera-agent my-other-agent
~~~
- Or create the project somewhere else:
~~~
$ create-hedera-agent my-agent --dir ~/projects
~~~`,
	}

	invalidAppNameIssue = &Issue{
		id: InvalidAppNameId,
		mdMsg: `
# Invalid app name

The app name becomes the project directory name, so it must be non-empty and
must not contain path separators.

## Things you can try:
- Use a simple name such as ` + "`my-agent`" + `
- Use ` + "`--dir`" + ` to choose where the project is created`,
	}

	emptySelectionIssue = &Issue{
		id: EmptySelectionId,
		mdMsg: `
# No Hedera services selected

At least one service module is required.

## Things you can try:
- List the available services:
~~~
$ create-hedera-agent services
~~~
- Select services explicitly:
~~~
$ create-hedera-agent my-agent --services hts,hcs
~~~`,
	}

	fetchFailedIssue = &Issue{
		id: FetchFailedId,
		mdMsg: `
# Failed to fetch a source repository

The starter template or the modules repository could not be retrieved. No
project directory was created.

## Things you can try:
- Check your network connection and retry
- For private repositories, export a token (` + "`GITHUB_TOKEN`" + `, ` + "`GITLAB_TOKEN`" + ` or ` + "`GIT_TOKEN`" + `)
  or use an SSH URL with a key in ` + "`~/.ssh`" + `
- Verify the ref exists:
~~~
$ git ls-remote <url> <ref>
~~~
- Try the git binary backend:
~~~
$ HEDERA_AGENT_FETCH_BACKEND=git create-hedera-agent my-agent
~~~`,
		extLinks: []HttpLink{"https://docs.github.com/en/authentication"},
	}

	gitNotFoundIssue = &Issue{
		id: GitNotFoundId,
		mdMsg: `
# git was not found

The ` + "`git`" + ` fetch backend runs the git binary, which is not on your PATH.

## Things you can try:
- Install git and retry
- Switch to the built-in backend:
~~~
$ HEDERA_AGENT_FETCH_BACKEND=go-git create-hedera-agent my-agent
~~~`,
		extLinks: []HttpLink{"https://git-scm.com/downloads"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show the effective configuration:
~~~
$ create-hedera-agent config show
~~~
- Regenerate a default file:
~~~
$ create-hedera-agent config init --force
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	provisioningFailedIssue = &Issue{
		id: ProvisioningFailedId,
		mdMsg: `
# Account provisioning failed

The project was created, but its ` + "`.env`" + ` has blank account fields.

## Things you can try:
- Export operator credentials and rerun with ` + "`--provision`" + ` in a new directory:
~~~
$ export HEDERA_OPERATOR_ID=0.0.1234
$ export HEDERA_OPERATOR_KEY=302e...
~~~
- Or fill in ` + "`HEDERA_ACCOUNT_ID`" + ` and ` + "`HEDERA_PRIVATE_KEY`" + ` by hand`,
		extLinks: []HttpLink{"https://portal.hedera.com"},
	}

	partialProjectIssue = &Issue{
		id: PartialProjectId,
		mdMsg: `
# The project was only partially created

A step failed after the project directory was created. The directory was left
in place so you can inspect it.

## Things you can try:
- Remove the directory and run the command again
- Run with ` + "`--verbose`" + ` to see every phase`,
	}

	installFailedIssue = &Issue{
		id: InstallFailedId,
		mdMsg: `
# Dependency installation failed

The project is complete; only the install step failed.

## Things you can try:
- Run the install yourself:
~~~
$ cd my-agent && npm install
~~~
- Configure another command in ` + "`install.command`" + ``,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

The project directory or a temporary directory could not be written.

## Things you can try:
- Choose a writable parent with ` + "`--dir`" + `
- Check ` + "`$TMPDIR`" + ` points to a writable location`,
	}

	issues = map[Id]*Issue{
		targetExistsIssue.Id():       targetExistsIssue,
		invalidAppNameIssue.Id():     invalidAppNameIssue,
		emptySelectionIssue.Id():     emptySelectionIssue,
		fetchFailedIssue.Id():        fetchFailedIssue,
		gitNotFoundIssue.Id():        gitNotFoundIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		provisioningFailedIssue.Id(): provisioningFailedIssue,
		partialProjectIssue.Id():     partialProjectIssue,
		installFailedIssue.Id():      installFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := slices.Collect(maps.Values(issues))
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
