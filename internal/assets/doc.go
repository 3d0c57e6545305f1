// Package assets provides the deck stylesheet and the images shown on
// slides.
//
// Assets live under two directories of a file system:
//
//	{root}/
//	├── styles/
//	│   └── {name}.css           # slide stylesheet (e.g., deck.css)
//	└── images/
//	    └── {name}.{svg,png,jpg} # images placed on slides
//
// The built-in set is embedded in the binary. A Resolver puts a directory
// on disk in front of it so a talk can replace the stylesheet or an image
// while keeping everything else.
//
// Asset names are plain words: no separators, no dots. Directory sources
// are also rooted with afero.BasePathFs, which refuses paths outside the
// directory.
package assets
