package vhandle

import "time"

var zeroTime time.Time

func nowTime() time.Time { return time.Now() }
