package prog

import "src.smolcalc.dev/pkg/logutil"

var logger = logutil.GetLogger("[prog] ")
