package css

// UserAgentCSS holds the default element styles. It only uses simple
// selectors so it goes through Parse without errors.
const UserAgentCSS = `
/* Elements that never render */
head, script, style, title, meta, link, template {
	display: none;
}

/* Block elements */
html, body, div, article, aside, footer, header, nav, section,
main, figure, figcaption, address, dl, dt, form, fieldset, hr {
	display: block;
}

body {
	margin: 8px;
}

h1, h2, h3, h4, h5, h6 {
	display: block;
	font-weight: bold;
}

h1 { font-size: 2em; margin-top: 0.67em; margin-bottom: 0.67em; }
h2 { font-size: 1.5em; margin-top: 0.83em; margin-bottom: 0.83em; }
h3 { font-size: 1.17em; margin-top: 1em; margin-bottom: 1em; }
h4 { font-size: 1em; margin-top: 1.33em; margin-bottom: 1.33em; }
h5 { font-size: 0.83em; margin-top: 1.67em; margin-bottom: 1.67em; }
h6 { font-size: 0.67em; margin-top: 2.33em; margin-bottom: 2.33em; }

p {
	display: block;
	margin-top: 1em;
	margin-bottom: 1em;
}

blockquote {
	display: block;
	margin: 1em 40px;
}

pre {
	display: block;
	font-family: monospace;
	white-space: pre;
	margin-top: 1em;
	margin-bottom: 1em;
}

ul, ol {
	display: block;
	margin-top: 1em;
	margin-bottom: 1em;
	padding-left: 40px;
}

li {
	display: block;
}

dd {
	display: block;
	margin-left: 40px;
}

a {
	color: blue;
}

strong, b, th {
	font-weight: bold;
}

em, i, cite, var, dfn {
	font-style: italic;
}

code, kbd, samp, tt {
	font-family: monospace;
}

small {
	font-size: smaller;
}

mark {
	background-color: yellow;
	color: black;
}

hr {
	border-style: inset;
	border-width: 1px;
	margin-top: 0.5em;
	margin-bottom: 0.5em;
}
`
