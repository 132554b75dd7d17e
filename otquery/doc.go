/*
Package otquery provides typed views over tables of an OpenType font which
package ot exposes as raw bytes only, e.g. 'head', 'maxp' and 'name'.

All functions in this package are lenient: a missing or short table yields a
zero value (and false, where applicable), never an error.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/sfntcmap/ot"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// tableBytes returns the raw bytes of a table, or nil if the font does not
// contain it.
func tableBytes(otf *ot.Font, tag string) []byte {
	if otf == nil {
		return nil
	}
	b, err := otf.TableData(ot.T(tag))
	if err != nil {
		tracer().Debugf("no table %s: %v", tag, err)
		return nil
	}
	return b
}
