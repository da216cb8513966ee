package metrics

const (
	ClockReadyH            = "Whether the clock holds a valid wall time (1) or not (0)"
	ClockReadyN            = "mailclock_clock_ready"
	ClockSyncAttemptsH     = "The total number of network time sync attempts"
	ClockSyncAttemptsN     = "mailclock_clock_sync_attempts"
	ClockSyncErrorsH       = "The total number of network time sync attempts that reported an error"
	ClockSyncErrorsN       = "mailclock_clock_sync_errors"
	ClockSyncRateLimitedH  = "The total number of sync requests skipped because of the rate limit"
	ClockSyncRateLimitedN  = "mailclock_clock_sync_rate_limited"
	ClockNetworkTimeAdoptH = "The total number of times a network maintained wall time was adopted"
	ClockNetworkTimeAdoptN = "mailclock_clock_network_time_adopted"

	IPClientReqsSentH      = "The total number of requests sent via IP"
	IPClientReqsSentN      = "mailclock_ip_client_reqs_sent"
	IPClientPktsReceivedH  = "The total number of packets received via IP"
	IPClientPktsReceivedN  = "mailclock_ip_client_pkts_received"
	IPClientRespsAcceptedH = "The total number of responses accepted via IP"
	IPClientRespsAcceptedN = "mailclock_ip_client_resps_accepted"

	DriverClockStepsH = "The total number of clock corrections applied by the system clock driver"
	DriverClockStepsN = "mailclock_driver_clock_steps"
	DriverClockCorrH  = "The current clock correction of the system clock driver in seconds"
	DriverClockCorrN  = "mailclock_driver_clock_corr"
)
