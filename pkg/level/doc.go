// Package level loads level files into a sheet registry and exports the
// resulting layout.
//
// # Files
//
// A level is a sheet set that lists sheet files relative to itself. Both
// files may be JSON or TOML; the format is chosen by extension.
//
//	{
//	  "name": "Intro",
//	  "sheets": ["first.json", "second.toml"]
//	}
//
// A sheet file names the sheet, gives its size and optional starting pose,
// and maps text block names to their parameters:
//
//	{
//	  "name": "first",
//	  "size": {"x": 300, "y": 200},
//	  "rotation": 0,
//	  "texts": {
//	    "greeting": {"side": "right", "half": "left", "text": "Hello\nthere", "half_position": 40},
//	    "answer":   {"side": "internal", "half": "right", "text": "General", "position": {"x": 150, "y": 100}, "rotation": 90}
//	  }
//	}
//
// Texts are added to the sheet in sorted name order so snap scans are
// reproducible. Sheet paths may carry a "res:" or "res://" prefix, which
// anchors them at the directory of the set file like a plain relative path.
//
// # Layout export
//
// [WriteLayout] writes the committed pose of every registered sheet as JSON.
// The output can be fed back through [ApplyLayout].
package level
