// Package artifact finds the file the download tool left in a workspace.
package artifact
