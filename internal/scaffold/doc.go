// Package scaffold renders and writes boil's static front-end boilerplate:
// whole projects (index.html, stylesheet, optional script, package.json and
// .gitignore), standalone pages and HTML components. Bodies live in embedded
// text/template files; the CDN, icon, meta and theme snippets they splice in
// are plain functions of the chosen framework, icon library and theme.
package scaffold
