// Package deploy publishes a generated site to a static hosting branch. It
// shells out to git and npx gh-pages and stops at the first failure.
package deploy
