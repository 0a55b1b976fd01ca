// This file is part of VMDisplay.
//
// VMDisplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VMDisplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VMDisplay.  If not, see <https://www.gnu.org/licenses/>.

package sdlwin

import (
	"fmt"

	"github.com/bilelmoussaoui/vmdisplay/logger"
	"golang.org/x/sys/unix"
)

// watchFence waits for the fence file descriptor to signal and then calls
// done. the wait happens on its own goroutine so done is called off the UI
// goroutine. the caller is responsible for closing the descriptor
func watchFence(fd int, done func()) error {
	if fd < 0 {
		return fmt.Errorf("sdlwin: fence: invalid file descriptor %d", fd)
	}

	go func() {
		fds := []unix.PollFd{
			{Fd: int32(fd), Events: unix.POLLIN},
		}
		for {
			_, err := unix.Poll(fds, -1)
			if err == unix.EINTR {
				continue
			}
			if err != nil {
				logger.Logf("sdlwin", "fence poll: %v", err)
			}
			break // for loop
		}
		done()
	}()

	return nil
}

// closeFence closes a fence file descriptor without waiting for it
func closeFence(fd int) {
	if fd < 0 {
		return
	}
	if err := unix.Close(fd); err != nil {
		logger.Logf("sdlwin", "fence close: %v", err)
	}
}
