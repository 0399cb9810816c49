package main

func (rc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if rc.logger == nil {
		return
	}
	rc.logger.Sugar().Infof(format, a...)
}
