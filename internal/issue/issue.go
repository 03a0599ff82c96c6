// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ConfigLoadFailedId Id = iota + 1
	ModDirNotSetId
	ModNotFoundId
	NoMatchingVersionId
	ChecksumMismatchId
	NetworkFailedId
	RateLimitedId
	BackupFailedId
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

// Render renders the issue page with glamour. stylePath is a glamour style
// name ("auto", "dark", "light", "notty") or a path to a JSON style file.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
		for _, link := range i.extLinks {
			md.WriteString("\n- <" + string(link) + ">")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config.cue could not be read or does not match the expected schema.

## Things you can try:
- Print the location modify reads from:
~~~
$ modify config path
~~~

- Check the file for CUE syntax errors
- Remove unknown keys; the schema is closed
- Recreate a fresh file and copy your values over:
~~~
$ modify config init
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/tour/"},
	}

	modDirNotSetIssue = &Issue{
		id: ModDirNotSetId,
		mdMsg: `
# No mod directory configured!

Install, uninstall, list and backup all operate on your mods folder, and
modify does not know where it is yet.

## Things you can try:
- Set it from the interactive prompt with the 'config' command
- Or from the shell:
~~~
$ modify config set mod_dir ~/.minecraft/mods
~~~`,
	}

	modNotFoundIssue = &Issue{
		id: ModNotFoundId,
		mdMsg: `
# Mod not found!

Modrinth has no project with that slug or ID.

## Things you can try:
- Search first with 'sS' and copy the **Slug** line exactly
- Slugs are lowercase and use dashes, e.g. 'fabric-api'`,
		extLinks: []HttpLink{"https://modrinth.com/mods"},
	}

	noMatchingVersionIssue = &Issue{
		id: NoMatchingVersionId,
		mdMsg: `
# No matching version!

The mod exists but has no release for the requested Minecraft version
(and loader, when one is configured).

## Things you can try:
- Check the **Versions** line in the search results
- Clear the loader filter:
~~~
$ modify config set loader ""
~~~`,
	}

	checksumMismatchIssue = &Issue{
		id: ChecksumMismatchId,
		mdMsg: `
# Download verification failed!

The downloaded file does not match the hash Modrinth published for it.
Nothing was written to your mods folder.

## Things you can try:
- Retry the install; the download may have been interrupted
- Check for a proxy rewriting downloads`,
	}

	networkFailedIssue = &Issue{
		id: NetworkFailedId,
		mdMsg: `
# Could not reach Modrinth!

## Things you can try:
- Check your internet connection
- Raise the request timeout:
~~~
$ modify config set api.timeout_seconds 60
~~~`,
		extLinks: []HttpLink{"https://status.modrinth.com"},
	}

	rateLimitedIssue = &Issue{
		id: RateLimitedId,
		mdMsg: `
# Rate limited!

Modrinth allows a limited number of requests per minute per IP.

## Things you can try:
- Wait for the reset time shown above and retry`,
		extLinks: []HttpLink{"https://docs.modrinth.com/api/#ratelimits"},
	}

	backupFailedIssue = &Issue{
		id: BackupFailedId,
		mdMsg: `
# Backup failed!

The archive could not be written. A partial zip may remain in the
mod-backups folder next to your mods folder.

## Things you can try:
- Make sure the parent of your mods folder is writable
- Check free disk space
- Look for symbolic links that point back into the mods folder`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Things you can try:
- Check file/directory permissions of your mods folder
- Close the game launcher; it may hold the jars open`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		modDirNotSetIssue.Id():      modDirNotSetIssue,
		modNotFoundIssue.Id():       modNotFoundIssue,
		noMatchingVersionIssue.Id(): noMatchingVersionIssue,
		checksumMismatchIssue.Id():  checksumMismatchIssue,
		networkFailedIssue.Id():     networkFailedIssue,
		rateLimitedIssue.Id():       rateLimitedIssue,
		backupFailedIssue.Id():      backupFailedIssue,
		permissionDeniedIssue.Id():  permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
